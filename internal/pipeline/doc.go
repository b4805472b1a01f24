// Package pipeline assembles rendered source files into a single HTML
// document.
//
// A Document collects one table-of-contents entry and one section per
// rendered file, in discovery order. The Assembler executes the document
// template over it, embedding the stylesheet, so the exporter only ever sees
// one self-contained HTML page.
//
// PDF generation is handled separately by the root src2pdf package using
// headless Chrome (go-rod).
package pipeline
