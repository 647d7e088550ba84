package mdpdf

import (
	"errors"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrSourceNotFound     = errors.New("source not found")
	ErrSourceDecode       = errors.New("source is not valid UTF-8 text")
	ErrStylesheetNotFound = errors.New("stylesheet file not found")
	ErrStylesheetDecode   = errors.New("stylesheet file is not valid UTF-8 text")
	ErrStylesheetParse    = errors.New("invalid custom CSS")
	ErrRenderFailure      = errors.New("rendering failed")
	ErrOutputWrite        = errors.New("cannot write output")
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrNoOutput           = errors.New("output path is required")
	ErrNotADirectory      = errors.New("not a directory")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
	ErrInvalidEngine      = errors.New("invalid render engine")

	// ErrUnknownExtension is returned for Markdown extension names outside
	// the list reported by Extensions.
	ErrUnknownExtension = pipeline.ErrUnknownExtension

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
)
