package src2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyRoot      = errors.New("project root cannot be empty")
	ErrNotDirectory   = errors.New("project root is not a directory")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Watermark validation errors.
	ErrInvalidWatermarkColor   = errors.New("invalid watermark color")
	ErrInvalidWatermarkOpacity = errors.New("invalid watermark opacity")

	// Highlighting and filtering errors.
	ErrUnknownStyle = errors.New("unknown highlight style")
	ErrBadPattern   = errors.New("malformed exclusion pattern")
	ErrInvalidUTF8  = errors.New("file is not valid UTF-8")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("document style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
