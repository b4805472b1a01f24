// Package src2pdf renders the text files of a project tree into one
// syntax-highlighted PDF: a table of contents first, then one section per
// file headed by its path relative to the root.
//
//	conv, err := src2pdf.NewConverter(src2pdf.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, src2pdf.Input{
//	    Root:         "./myproject",
//	    ExcludeDirs:  []string{".git", "node_modules", "build*"},
//	    ExcludeFiles: []string{"*.log", "go.sum"},
//	})
//
// Exclusion patterns are shell wildcards matched against a single path
// segment: file patterns against the file name, directory patterns against
// every directory between the root and the file. Files whose first 1024
// bytes are not valid UTF-8 are treated as binary. Files that are excluded,
// binary, unreadable or fail to highlight are logged and listed in
// Result.Skipped; they never abort a conversion.
//
// Result.HTML always holds the assembled document. Unless Input.HTMLOnly is
// set, it is printed to Result.PDF by headless Chrome through go-rod, which
// downloads Chromium on first use unless ROD_BROWSER_BIN names a browser.
package src2pdf
