package pipeline

import (
	"html/template"
	"strconv"
)

// AnchorPrefix prefixes every section anchor.
const AnchorPrefix = "file-"

// TOCEntry links a relative path to its section anchor.
type TOCEntry struct {
	Path   string
	Anchor string
}

// Section is one rendered file in the document body.
type Section struct {
	Path   string
	Anchor string
	Markup template.HTML
}

// Document accumulates TOC entries and sections in lockstep.
// The zero value is not usable; use NewDocument.
type Document struct {
	Title    string
	entries  []TOCEntry
	sections []Section
}

// NewDocument creates an empty document with the given title.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// Anchor returns the anchor assigned to the i-th section.
func Anchor(i int) string {
	return AnchorPrefix + strconv.Itoa(i)
}

// Add appends a section and its TOC entry. markup must already be safe HTML
// produced by a renderer. Returns the anchor assigned to the section.
func (d *Document) Add(path, markup string) string {
	anchor := Anchor(len(d.sections))
	d.entries = append(d.entries, TOCEntry{Path: path, Anchor: anchor})
	// #nosec G203 -- markup is renderer output, not user-supplied HTML
	d.sections = append(d.sections, Section{Path: path, Anchor: anchor, Markup: template.HTML(markup)})
	return anchor
}

// Entries returns the table of contents in document order.
func (d *Document) Entries() []TOCEntry {
	return d.entries
}

// Sections returns the rendered sections in document order.
func (d *Document) Sections() []Section {
	return d.sections
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}
