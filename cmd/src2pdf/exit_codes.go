package main

import (
	"context"
	"errors"
	"os"

	src2pdf "github.com/alnah/go-src2pdf"
	"github.com/alnah/go-src2pdf/internal/config"
)

// Exit codes for src2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or project path
	ExitIO      = 3 // Output not writable, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, src2pdf.ErrBrowserConnect) ||
		errors.Is(err, src2pdf.ErrPageCreate) ||
		errors.Is(err, src2pdf.ErrPageLoad) ||
		errors.Is(err, src2pdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigPath) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPattern) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, src2pdf.ErrEmptyRoot) ||
		errors.Is(err, src2pdf.ErrNotDirectory) ||
		errors.Is(err, src2pdf.ErrInvalidPageSize) ||
		errors.Is(err, src2pdf.ErrInvalidOrientation) ||
		errors.Is(err, src2pdf.ErrInvalidMargin) ||
		errors.Is(err, src2pdf.ErrInvalidWatermarkColor) ||
		errors.Is(err, src2pdf.ErrInvalidWatermarkOpacity) ||
		errors.Is(err, src2pdf.ErrUnknownStyle) ||
		errors.Is(err, src2pdf.ErrBadPattern) ||
		errors.Is(err, src2pdf.ErrStyleNotFound) ||
		errors.Is(err, src2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
