// Package highlight turns file contents into syntax-highlighted HTML.
//
// Highlighter picks a chroma lexer from the file name and falls back to
// plain text. Output uses CSS classes rather than inline styles, so one
// stylesheet from Highlighter.CSS styles every rendered file.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for highlighting.
var (
	ErrUnknownStyle = errors.New("unknown highlight style")
	ErrHighlight    = errors.New("highlighting failed")
)

// PlainTextLexer is the lexer name reported when no language lexer matches.
const PlainTextLexer = "plaintext"

// styleAliases maps style names from other highlighters to chroma styles.
// "default" is the name of the Pygments default theme, which chroma ships as
// "pygments".
var styleAliases = map[string]string{
	"default": "pygments",
}

// Renderer converts the content of one file into HTML markup.
type Renderer interface {
	Render(name, content string) (string, error)
}

// Options configures a Highlighter.
type Options struct {
	Style       string // chroma style name or alias
	LineNumbers bool
	TabWidth    int // 0 means 4
}

// Highlighter renders source code with chroma.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// Compile-time interface check.
var _ Renderer = (*Highlighter)(nil)

// NewHighlighter creates a Highlighter for the given style.
// Returns ErrUnknownStyle when the style is not registered with chroma.
func NewHighlighter(opts Options) (*Highlighter, error) {
	style, err := ResolveStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	formatterOpts := []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.TabWidth(tabWidth),
	}
	if opts.LineNumbers {
		formatterOpts = append(formatterOpts, chromahtml.WithLineNumbers(true))
	}

	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(formatterOpts...),
	}, nil
}

// ResolveStyle looks up a chroma style by name, honoring aliases.
func ResolveStyle(name string) (*chroma.Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := styleAliases[key]; ok {
		key = alias
	}
	style, ok := styles.Registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// StyleNames lists the accepted style names, aliases included, sorted.
func StyleNames() []string {
	names := append([]string{}, styles.Names()...)
	for alias := range styleAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// LexerName returns the name of the lexer used for a file name, or
// PlainTextLexer when none matches.
func LexerName(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return PlainTextLexer
	}
	return lexer.Config().Name
}

// Render highlights content using the lexer matched by the file name.
// Leading and trailing whitespace is stripped before highlighting.
func (h *Highlighter) Render(name, content string) (string, error) {
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, strings.TrimSpace(content))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrHighlight, name, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrHighlight, name, err)
	}
	return buf.String(), nil
}

// CSS returns the stylesheet for the classes emitted by Render.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: writing CSS: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}

// Style returns the resolved chroma style name.
func (h *Highlighter) Style() string {
	return h.style.Name
}
