package main

import (
	"errors"
	"os"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General error, or a batch with failed files
	ExitUsage   = 2 // Invalid flags, config, theme, extension or CSS
	ExitIO      = 3 // Source or stylesheet unreadable, output unwritable
	ExitBrowser = 4 // Browser/Chrome errors
)

// CLI errors.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrBatchFailed  = errors.New("batch had failures")
	ErrNoMarkdown   = errors.New("no markdown files found")
	ErrReadListFile = errors.New("cannot read list file")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpdf.ErrBrowserConnect) ||
		errors.Is(err, mdpdf.ErrPageCreate) ||
		errors.Is(err, mdpdf.ErrPageLoad) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mdpdf.ErrUnknownTheme) ||
		errors.Is(err, mdpdf.ErrUnknownExtension) ||
		errors.Is(err, mdpdf.ErrStylesheetParse) ||
		errors.Is(err, mdpdf.ErrInvalidEngine) ||
		errors.Is(err, mdpdf.ErrInvalidAssetPath) ||
		errors.Is(err, mdpdf.ErrInvalidPageSize) ||
		errors.Is(err, mdpdf.ErrInvalidOrientation) ||
		errors.Is(err, mdpdf.ErrInvalidMargin) ||
		errors.Is(err, mdpdf.ErrInvalidFooterPosition) ||
		errors.Is(err, mdpdf.ErrInvalidTOCDepth) ||
		errors.Is(err, mdpdf.ErrNoOutput) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpdf.ErrSourceNotFound) ||
		errors.Is(err, mdpdf.ErrSourceDecode) ||
		errors.Is(err, mdpdf.ErrStylesheetNotFound) ||
		errors.Is(err, mdpdf.ErrStylesheetDecode) ||
		errors.Is(err, mdpdf.ErrOutputWrite) ||
		errors.Is(err, mdpdf.ErrNotADirectory) ||
		errors.Is(err, ErrNoMarkdown) ||
		errors.Is(err, ErrReadListFile) {
		return ExitIO
	}

	return ExitGeneral
}
