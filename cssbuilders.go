package src2pdf

import (
	"strconv"
	"strings"
)

const (
	defaultFontFamily = "sans-serif"
	watermarkFontSize = "8rem"
)

// decl is one CSS property declaration.
type decl struct{ prop, value string }

// writeRule appends "selector { prop: value; ... }" to b.
func writeRule(b *strings.Builder, comment, selector string, decls ...decl) {
	if comment != "" {
		b.WriteString("\n/* " + comment + " */\n")
	}
	b.WriteString(selector + " {\n")
	for _, d := range decls {
		b.WriteString("  " + d.prop + ": " + d.value + ";\n")
	}
	b.WriteString("}\n")
}

// buildStylesheet joins the document stylesheet, the highlighter rules and
// the generated rules, in that order, so later rules win.
func buildStylesheet(documentCSS, highlightCSS string, w *Watermark) string {
	var b strings.Builder
	b.WriteString(documentCSS)
	b.WriteString("\n/* Syntax highlighting */\n")
	b.WriteString(highlightCSS)

	// A file heading never ends a page alone.
	writeRule(&b, "Sections", ".file-container > h2",
		decl{"break-after", "avoid"},
		decl{"page-break-after", "avoid"})

	b.WriteString(buildWatermarkCSS(w))
	return b.String()
}

// buildWatermarkCSS renders w as fixed diagonal text behind every page.
// Missing color and opacity fall back to the package defaults.
func buildWatermarkCSS(w *Watermark) string {
	if w == nil || w.Text == "" {
		return ""
	}

	color := w.Color
	if color == "" {
		color = DefaultWatermarkColor
	}
	opacity := w.Opacity
	if opacity == 0 {
		opacity = DefaultWatermarkOpacity
	}
	angle := strconv.FormatFloat(w.Angle, 'f', 1, 64)

	var b strings.Builder
	writeRule(&b, "Watermark", "body::before",
		decl{"content", `"` + escapeCSSString(breakURLPattern(w.Text)) + `"`},
		decl{"position", "fixed"},
		decl{"top", "50%"},
		decl{"left", "50%"},
		decl{"transform", "translate(-50%, -50%) rotate(" + angle + "deg)"},
		decl{"font-size", watermarkFontSize},
		decl{"font-weight", "bold"},
		decl{"font-family", defaultFontFamily},
		decl{"color", color},
		decl{"opacity", strconv.FormatFloat(opacity, 'f', 2, 64)},
		decl{"z-index", "-1"},
		decl{"pointer-events", "none"},
		decl{"white-space", "nowrap"})
	return b.String()
}

var cssStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\A `,
	"\r", "",
)

// escapeCSSString makes s safe inside a double-quoted CSS string.
func escapeCSSString(s string) string {
	return cssStringEscaper.Replace(s)
}

// breakURLPattern swaps dots for ONE DOT LEADER (U+2024) so PDF viewers do
// not turn text such as "example.com" into a link.
func breakURLPattern(text string) string {
	return strings.ReplaceAll(text, ".", "․")
}
