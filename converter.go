package src2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/alnah/go-src2pdf/internal/assets"
	"github.com/alnah/go-src2pdf/internal/highlight"
	"github.com/alnah/go-src2pdf/internal/pipeline"
	"github.com/alnah/go-src2pdf/internal/scan"
)

// DefaultHighlightStyle is used when Input.HighlightStyle is empty.
const DefaultHighlightStyle = "default"

// Converter orchestrates the directory-to-PDF conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	logger       *zap.Logger
	assetLoader  assets.AssetLoader
	assembler    *pipeline.Assembler
	documentCSS  string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLogger, WithDocumentStyle).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			documentStyle: assets.DefaultStyleName,
		},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		c.logger.Debug("using custom assets",
			zap.String("path", c.cfg.assetPath),
			zap.Bool("custom", resolver.HasCustomLoader()))
	}

	css, err := c.assetLoader.LoadStyle(c.cfg.documentStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleNotFound, c.cfg.documentStyle, err)
	}
	c.documentCSS = css

	tmpl, err := c.assetLoader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	c.assembler, err = pipeline.NewAssembler(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing assembler: %w", err)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}

	return c, nil
}

// renderedFile is a file that made it through rendering.
type renderedFile struct {
	relPath  string
	markup   string
	markdown bool
}

// Convert scans input.Root and returns the assembled HTML and the PDF.
// Files that are excluded, binary, unreadable, not valid UTF-8 or fail to
// highlight are logged, reported in Result.Skipped and left out.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	filter, err := scan.NewFilter(input.Root, input.ExcludeDirs, input.ExcludeFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPattern, err)
	}
	for _, p := range filter.Inert() {
		c.logger.Warn("exclusion pattern can never match a single path segment", zap.String("pattern", p))
	}

	renderer, highlighter, err := newRenderer(input)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("highlighter ready",
		zap.String("style", highlighter.Style()),
		zap.Bool("markdown", input.RenderMarkdown))

	scanned, err := scan.NewScanner(filter, c.logger).Scan()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", input.Root, err)
	}

	res := &Result{}
	for _, s := range scanned.Skipped {
		res.Skipped = append(res.Skipped, SkippedFile{Path: s.File.RelPath, Reason: SkipReason(s.Reason), Err: s.Err})
	}

	rendered := make([]renderedFile, 0, len(scanned.Included))
	for _, f := range scanned.Included {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, skipped := c.renderFile(f, renderer, input.RenderMarkdown)
		if skipped != nil {
			res.Skipped = append(res.Skipped, *skipped)
			continue
		}
		rendered = append(rendered, r)
	}

	if input.RenderMarkdown {
		c.rewriteMarkdownRefs(filter.Root(), rendered)
	}

	doc := pipeline.NewDocument(documentTitle(input))
	for _, r := range rendered {
		doc.Add(r.relPath, r.markup)
		res.Files = append(res.Files, r.relPath)
	}

	highlightCSS, err := highlighter.CSS()
	if err != nil {
		return nil, err
	}
	htmlContent, err := c.assembler.Assemble(ctx, doc, buildStylesheet(c.documentCSS, highlightCSS, input.Watermark))
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}
	res.HTML = []byte(htmlContent)

	c.logger.Info("document assembled",
		zap.Int("sections", doc.Len()),
		zap.Int("skipped", len(res.Skipped)))

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Page:   input.Page,
		Footer: input.Footer,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// renderFile reads and renders one file. It returns a SkippedFile instead of
// an error; per-file failures never abort the conversion.
func (c *Converter) renderFile(f scan.File, renderer highlight.Renderer, markdown bool) (renderedFile, *SkippedFile) {
	content, err := os.ReadFile(f.Path) // #nosec G304 -- path comes from walking the project root
	if err != nil {
		c.logger.Error("file read error", zap.String("path", f.Path), zap.Error(err))
		return renderedFile{}, &SkippedFile{Path: f.RelPath, Reason: SkipUnreadable, Err: err}
	}

	// The binary probe only checks a prefix; the rest of the file can still
	// hold invalid sequences.
	if !utf8.Valid(content) {
		c.logger.Error("file decode error", zap.String("path", f.Path))
		return renderedFile{}, &SkippedFile{Path: f.RelPath, Reason: SkipUndecoded, Err: ErrInvalidUTF8}
	}

	markup, err := renderer.Render(f.RelPath, string(content))
	if err != nil {
		c.logger.Error("file render error", zap.String("path", f.Path), zap.Error(err))
		return renderedFile{}, &SkippedFile{Path: f.RelPath, Reason: SkipRender, Err: err}
	}

	c.logger.Debug("rendered", zap.String("path", f.RelPath), zap.String("lexer", highlight.LexerName(f.RelPath)))
	return renderedFile{
		relPath:  f.RelPath,
		markup:   markup,
		markdown: markdown && highlight.IsMarkdown(f.RelPath),
	}, nil
}

// rewriteMarkdownRefs turns links between rendered files into section
// anchors and relative images into file:// URLs. Anchors follow the order
// sections are added to the document.
func (c *Converter) rewriteMarkdownRefs(root string, rendered []renderedFile) {
	anchors := make(map[string]string, len(rendered))
	for i, r := range rendered {
		anchors[r.relPath] = pipeline.Anchor(i)
	}

	rewriter := pipeline.NewRefRewriter(root, anchors)
	for i, r := range rendered {
		if !r.markdown {
			continue
		}
		markup, err := rewriter.Rewrite(r.markup, r.relPath)
		if err != nil {
			c.logger.Warn("keeping markdown references unresolved", zap.String("path", r.relPath), zap.Error(err))
			continue
		}
		rendered[i].markup = markup
	}
}

// newRenderer builds the source highlighter and, when requested, wraps it
// with Markdown prose rendering.
func newRenderer(input Input) (highlight.Renderer, *highlight.Highlighter, error) {
	style := input.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}

	h, err := highlight.NewHighlighter(highlight.Options{Style: style, LineNumbers: input.LineNumbers})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnknownStyle, err)
	}
	if !input.RenderMarkdown {
		return h, h, nil
	}

	md, err := highlight.NewMarkdownRenderer(style)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnknownStyle, err)
	}
	return &highlight.Dispatcher{Source: h, Markdown: md}, h, nil
}

// documentTitle returns input.Title or the base name of the project root.
func documentTitle(input Input) string {
	if input.Title != "" {
		return input.Title
	}
	abs, err := filepath.Abs(input.Root)
	if err != nil {
		return filepath.Base(input.Root)
	}
	return filepath.Base(abs)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Root == "" {
		return ErrEmptyRoot
	}
	info, err := os.Stat(input.Root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, input.Root)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Watermark.Validate(); err != nil {
		return err
	}
	return nil
}
