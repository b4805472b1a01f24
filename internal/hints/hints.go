// Package hints appends actionable advice to fatal CLI diagnostics.
// Every hint renders as "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-src2pdf/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVars are set by the CI services whose runners lack a Chrome sandbox.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// ForBrowserConnect advises on a browser that failed to start, based on the
// process environment.
func ForBrowserConnect() string {
	return browserHint(os.Getenv, func() bool { return fileutil.FileExists("/.dockerenv") })
}

// browserHint builds the browser advice from getenv and a container probe.
func browserHint(getenv func(string) string, inContainer func() bool) string {
	var tips []string

	sandboxed := getenv("ROD_NO_SANDBOX") != "1"
	if sandboxed && (inCI(getenv) || inContainer()) {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	tips = append(tips, "use --html to check the document without a browser")

	return join(tips...)
}

func inCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForTimeout advises on a page load that ran past --timeout.
func ForTimeout() string {
	return join("for large projects, raise --timeout or exclude generated directories")
}

// ForConfigNotFound advises on a missing config file at path.
func ForConfigNotFound(path string) string {
	return join("create "+path+" (see --help for keys)", "or point --config at an existing file")
}

// ForOutputWrite advises on an output file that could not be written.
func ForOutputWrite() string {
	return join("check the working directory is writable and output_pdf_name is not open elsewhere")
}

// ForStyleNotFound lists the styles that would have been accepted.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

// ForEmptyDocument advises when no file made it into the document.
func ForEmptyDocument() string {
	return join("all files were excluded or skipped; review exclude_dirs and exclude_files")
}

// join renders tips as one hint line, or nothing when there are none.
func join(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return prefix + strings.Join(tips, "; ")
}
