package src2pdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-src2pdf/internal/fileutil"
	"github.com/alnah/go-src2pdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page   *PageSettings
	Footer *Footer
}

// paperSize holds portrait paper dimensions in inches.
type paperSize struct {
	width, height float64
}

// paperSizesInches lists supported paper sizes in portrait orientation.
var paperSizesInches = map[string]paperSize{
	PageSizeA4:     {width: 8.27, height: 11.69},
	PageSizeLetter: {width: 8.5, height: 11},
	PageSizeLegal:  {width: 8.5, height: 14},
}

const (
	cmPerInch = 2.54

	// footerReserveInches is added to the bottom margin to fit the footer.
	footerReserveInches = 0.3
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, logger *zap.Logger) *rodRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rodRenderer{timeout: timeout, logger: logger}
}

// ensureBrowser launches and connects to Chrome on first use.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := configureLauncher(launcher.New(), os.Getenv)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.logger.Debug("browser launched", zap.Int("pid", l.PID()))

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// configureLauncher applies ROD_BROWSER_BIN (an installed browser) and
// disables the sandbox under CI=true or ROD_NO_SANDBOX=1.
func configureLauncher(l *launcher.Launcher, getenv func(string) string) *launcher.Launcher {
	if bin := getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	return l
}

// Close releases browser resources. The browser process tree is killed even
// when the graceful close fails, so an interrupted run leaves no Chrome behind.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	if err := process.KillTree(r.launcher.PID()); err != nil {
		r.logger.Debug("browser process cleanup", zap.Error(err))
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile loads filePath in a new tab and prints it to PDF.
// Cancellation of ctx wins over the browser error it causes.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout, err := r.loadTimeout(ctx)
	if err != nil {
		return nil, err
	}
	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, browserErr(ctx, ErrPageLoad, err)
	}

	stream, err := page.Context(ctx).PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, browserErr(ctx, ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// loadTimeout is the time left before ctx's deadline, or the configured
// timeout when ctx has none.
func (r *rodRenderer) loadTimeout(ctx context.Context) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// browserErr reports ctx's error when it ended, otherwise err under sentinel.
func browserErr(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// fileURL builds a file:// URL for an absolute path on any platform.
func fileURL(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "file://" + path
}

// buildPDFOptions constructs proto.PagePrintToPDF from page settings and the
// optional footer. Nil page settings mean A4 portrait with default margins.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	var footer *Footer
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		footer = opts.Footer
	}

	size, ok := paperSizesInches[strings.ToLower(page.Size)]
	if !ok {
		size = paperSizesInches[PageSizeA4]
	}
	width, height := size.width, size.height
	if strings.EqualFold(page.Orientation, OrientationLandscape) {
		width, height = height, width
	}

	margin := page.MarginCM / cmPerInch
	marginBottom := margin
	hasFooter := footer != nil && (footer.ShowPageNumber || footer.Text != "")
	if hasFooter {
		marginBottom += footerReserveInches
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}

	if hasFooter {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(footer)
	}

	return pdfOpts
}

// footerStyle lays Chrome's footer out under the right margin.
const footerStyle = "font-size: 8px; font-family: " + defaultFontFamily +
	"; color: #aaa; width: 100%; text-align: right; padding: 0 1.8cm;"

// buildFooterTemplate renders the footer for Chrome's print template. Page
// numbers use Chrome's pageNumber and totalPages placeholder classes.
func buildFooterTemplate(f *Footer) string {
	const empty = "<span></span>"
	if f == nil {
		return empty
	}

	var parts []string
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}
	if f.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if len(parts) == 0 {
		return empty
	}
	return `<div style="` + footerStyle + `">` + strings.Join(parts, " - ") + "</div>"
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, logger *zap.Logger) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout, logger),
	}
}

// ToPDF writes the HTML to a temporary file and renders it with headless
// Chrome. Loading from a file lets Chrome resolve file:// image references.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
