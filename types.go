package src2pdf

import (
	"fmt"
	"regexp"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in centimeters.
const (
	MinMarginCM     = 0.5
	MaxMarginCM     = 7.5
	DefaultMarginCM = 1.8
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	MarginCM    float64 // centimeters, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 1.8cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		MarginCM:    DefaultMarginCM,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.MarginCM < MinMarginCM || p.MarginCM > MaxMarginCM {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f cm)", ErrInvalidMargin, p.MarginCM, MinMarginCM, MaxMarginCM)
	}

	return nil
}

func isValidPageSize(size string) bool {
	_, ok := paperSizesInches[strings.ToLower(size)]
	return ok
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the PDF footer printed by the browser.
type Footer struct {
	ShowPageNumber bool
	Text           string
}

// Watermark configures a diagonal background text on every page.
type Watermark struct {
	Text    string
	Color   string  // hex color, e.g. "#888888"
	Opacity float64 // 0.0 to 1.0
	Angle   float64 // degrees
}

// Watermark defaults.
const (
	DefaultWatermarkColor   = "#888888"
	DefaultWatermarkOpacity = 0.1
	DefaultWatermarkAngle   = -45
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that watermark settings are valid.
// Returns nil if w is nil (nil means no watermark).
func (w *Watermark) Validate() error {
	if w == nil {
		return nil
	}
	if w.Color != "" && !hexColorPattern.MatchString(w.Color) {
		return fmt.Errorf("%w: %q (use #RGB or #RRGGBB)", ErrInvalidWatermarkColor, w.Color)
	}
	if w.Opacity < 0 || w.Opacity > 1 {
		return fmt.Errorf("%w: %.2f (must be between 0 and 1)", ErrInvalidWatermarkOpacity, w.Opacity)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Root           string        // Project directory (required)
	Title          string        // Document title (default: base name of Root)
	ExcludeDirs    []string      // Wildcard patterns matched against each directory segment
	ExcludeFiles   []string      // Wildcard patterns matched against the file name
	HighlightStyle string        // chroma style name (default: "default")
	LineNumbers    bool          // Prefix code lines with their number
	RenderMarkdown bool          // Render .md files as prose instead of highlighted source
	Page           *PageSettings // Page settings (optional, nil = defaults)
	Footer         *Footer       // Footer config (optional)
	Watermark      *Watermark    // Watermark config (optional)
	HTMLOnly       bool          // Skip PDF generation
}

// SkipReason explains why a file is missing from the document.
type SkipReason string

// Skip reasons.
const (
	SkipExcluded   SkipReason = "excluded"
	SkipBinary     SkipReason = "binary"
	SkipUnreadable SkipReason = "unreadable"
	SkipUndecoded  SkipReason = "invalid utf-8"
	SkipRender     SkipReason = "render failed"
)

// SkippedFile is a discovered file that was left out of the document.
type SkippedFile struct {
	Path   string // relative to Root, slash-separated
	Reason SkipReason
	Err    error // underlying error, nil for exclusions and binaries
}

// Result holds the output of a conversion.
type Result struct {
	HTML    []byte
	PDF     []byte        // nil when Input.HTMLOnly is set
	Files   []string      // rendered relative paths, in document order
	Skipped []SkippedFile // files left out, in discovery order
}
