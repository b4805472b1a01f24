package highlight

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownExtensions lists the file extensions rendered as prose.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsMarkdown reports whether name has a Markdown file extension.
func IsMarkdown(name string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(name))]
}

// MarkdownRenderer renders Markdown files as formatted prose with GFM
// extensions. Fenced code blocks are highlighted with the same chroma style
// and CSS classes as Highlighter, so one stylesheet covers both.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ Renderer = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer creates a MarkdownRenderer for the given chroma style.
func NewMarkdownRenderer(style string) (*MarkdownRenderer, error) {
	resolved, err := ResolveStyle(style)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithCustomStyle(resolved),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML in the source is escaped, never passed through.
		),
	)
	return &MarkdownRenderer{md: md}, nil
}

// Render converts Markdown content to an HTML fragment wrapped in a
// markdown-body container.
func (m *MarkdownRenderer) Render(name, content string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="markdown-body">`)
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := m.md.Convert([]byte(content), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrHighlight, name, err)
	}
	buf.WriteString(`</div>`)
	return buf.String(), nil
}

// HeadingIDPrefix starts every generated heading ID, keeping headings out of
// the namespace of document section anchors.
const HeadingIDPrefix = "md-"

// headingIDs generates unique, prefixed heading IDs for one Markdown file.
type headingIDs struct {
	used map[string]bool
}

var _ parser.IDs = (*headingIDs)(nil)

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]bool)}
}

// Generate implements parser.IDs.
func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := HeadingIDPrefix + slugify(string(value))
	id := base
	for n := 1; h.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	h.used[id] = true
	return []byte(id)
}

// Put implements parser.IDs.
func (h *headingIDs) Put(value []byte) {
	h.used[string(value)] = true
}

// slugify lowercases s, keeps letters and digits, and joins the runs between
// them with single hyphens.
func slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			hyphen = false
			continue
		}
		hyphen = true
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

// Dispatcher routes Markdown files to a MarkdownRenderer and everything else
// to the source Highlighter.
type Dispatcher struct {
	Source   Renderer
	Markdown Renderer // nil disables prose rendering
}

// Compile-time interface check.
var _ Renderer = (*Dispatcher)(nil)

// Render implements Renderer.
func (d *Dispatcher) Render(name, content string) (string, error) {
	if d.Markdown != nil && IsMarkdown(name) {
		return d.Markdown.Render(name, content)
	}
	return d.Source.Render(name, content)
}
