package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrTemplateRender = errors.New("document template rendering failed")
	ErrTOCMismatch    = errors.New("table of contents does not match sections")
	ErrNilDocument    = errors.New("document is nil")
)

// templateData is the value the document template executes over.
type templateData struct {
	Title    string
	CSS      template.CSS
	Entries  []TOCEntry
	Sections []Section
}

// Assembler renders a Document into a complete HTML page.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler parses the document template.
func NewAssembler(tmplContent string) (*Assembler, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Assembler{tmpl: tmpl}, nil
}

// Assemble executes the template with the document and stylesheet.
// Returns ErrTOCMismatch if entries and sections are not paired one to one.
func (a *Assembler) Assemble(ctx context.Context, doc *Document, css string) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkPairing(doc); err != nil {
		return "", err
	}

	data := templateData{
		Title: doc.Title,
		// #nosec G203 -- stylesheet is sanitized against </style> breakout
		CSS:      template.CSS(sanitizeCSS(css)),
		Entries:  doc.Entries(),
		Sections: doc.Sections(),
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

func checkPairing(doc *Document) error {
	entries, sections := doc.Entries(), doc.Sections()
	if len(entries) != len(sections) {
		return fmt.Errorf("%w: %d entries, %d sections", ErrTOCMismatch, len(entries), len(sections))
	}
	for i := range entries {
		if entries[i].Anchor != sections[i].Anchor || entries[i].Path != sections[i].Path {
			return fmt.Errorf("%w: entry %d (%s) vs section (%s)", ErrTOCMismatch, i, entries[i].Path, sections[i].Path)
		}
	}
	return nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
