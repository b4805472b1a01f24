package main

import (
	"fmt"
	"io"
	"runtime"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: src2pdf [flags] <project_path>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every text file of a project into one syntax-highlighted PDF")
	fmt.Fprintln(w, "with a table of contents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  project_path              Directory to document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: config.json)")
	fmt.Fprintln(w, "  -v, --verbose             Show debug diagnostics")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "      --html                Write the HTML document instead of the PDF (no browser)")
	fmt.Fprintln(w, "      --timeout <duration>  Browser page-load timeout (default: 30s)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config keys (JSON):")
	fmt.Fprintln(w, "  output_pdf_name   Output file name (default: project_documentation.pdf)")
	fmt.Fprintln(w, "  pygments_style    Highlight style (default: default)")
	fmt.Fprintln(w, "  exclude_dirs      Wildcard patterns matched against each directory name")
	fmt.Fprintln(w, "  exclude_files     Wildcard patterns matched against file names")
	fmt.Fprintln(w, "  page_size         a4, letter, legal (default: a4)")
	fmt.Fprintln(w, "  page_orientation  portrait, landscape (default: portrait)")
	fmt.Fprintln(w, "  page_margin_cm    Margin in cm, 0.5-7.5 (default: 1.8)")
	fmt.Fprintln(w, "  line_numbers      Number code lines (default: true)")
	fmt.Fprintln(w, "  page_numbers      Page numbers in the footer (default: false)")
	fmt.Fprintln(w, "  watermark         Diagonal background text")
	fmt.Fprintln(w, "  render_markdown   Render .md files as prose (default: false)")
	fmt.Fprintln(w, "  document_style    Document stylesheet: default, compact")
	fmt.Fprintln(w, "  assets_dir        Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome/Chromium binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the browser sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage/config, 3 I/O, 4 browser")
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "src2pdf %s (%s/%s, %s)\n", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
