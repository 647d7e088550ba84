package mdpdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Mode selects the artifact a conversion produces.
type Mode int

const (
	// ModePDF renders the document to PDF through headless Chrome.
	ModePDF Mode = iota
	// ModeHTML writes the styled HTML document and skips the browser.
	ModeHTML
)

// String returns "pdf" or "html".
func (m Mode) String() string {
	if m == ModeHTML {
		return "html"
	}
	return "pdf"
}

// Ext returns the output file extension for the mode, with the dot.
func (m Mode) Ext() string {
	return "." + m.String()
}

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

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// PageSettings overrides the page box declared by the theme.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait with the default margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil keeps the theme's page box).
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

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the footer Chrome prints on every page.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// TOC depth bounds.
const (
	MinTOCDepth = 1
	MaxTOCDepth = 6
)

// TOC requests a table of contents at the top of the document.
// A [TOC] paragraph in the source is handled by the toc extension instead.
type TOC struct {
	Title    string
	MinDepth int // 0 means 1
	MaxDepth int // 0 means 3
}

// Validate checks depth bounds. Returns nil if t is nil.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < MinTOCDepth || minDepth > MaxTOCDepth {
		return fmt.Errorf("%w: min depth %d (must be between %d and %d)", ErrInvalidTOCDepth, minDepth, MinTOCDepth, MaxTOCDepth)
	}
	if maxDepth < MinTOCDepth || maxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: max depth %d (must be between %d and %d)", ErrInvalidTOCDepth, maxDepth, MinTOCDepth, MaxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: min depth %d exceeds max depth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = pipeline.DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = pipeline.DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Metadata holds document properties read from a leading metadata block.
type Metadata = pipeline.Metadata

// ExtensionInfo describes one Markdown extension.
type ExtensionInfo = pipeline.ExtensionInfo

// ThemeInfo describes one available theme.
type ThemeInfo struct {
	Name        string
	Description string
	Custom      bool // loaded from the asset directory
}

// Input is one in-memory conversion.
type Input struct {
	Markdown  string        // Markdown content; empty yields an empty document
	Title     string        // overrides metadata and heading titles
	Theme     string        // empty selects the converter's theme
	CSSFile   string        // custom stylesheet path (optional)
	CSS       string        // inline custom CSS, applied after CSSFile (optional)
	SourceDir string        // base for relative image paths (optional)
	Mode      Mode          // ModePDF or ModeHTML
	Page      *PageSettings // nil keeps the converter's page settings
	Footer    *Footer       // nil keeps the converter's footer
	TOC       *TOC          // nil keeps the converter's TOC setting
}

// ConvertResult holds the output of Convert.
type ConvertResult struct {
	HTML  []byte // complete HTML document
	CSS   string // resolved stylesheet embedded in HTML
	Title string
	Meta  Metadata
	PDF   []byte // nil in ModeHTML
	// MissingImages lists relative image references with no file behind them.
	MissingImages []string
}

// FileRequest converts one Markdown file.
type FileRequest struct {
	Source  string // Markdown file path (required)
	Output  string // empty derives it from Source and Mode
	Theme   string
	CSS     string
	CSSFile string
	Mode    Mode
	Title   string
}

// StringRequest converts Markdown text held in memory.
type StringRequest struct {
	Markdown  string
	Output    string // required
	Theme     string
	Title     string
	CSS       string
	CSSFile   string
	Mode      Mode
	SourceDir string // base for relative image paths
}

// BatchJob describes a set of Markdown files converted with shared settings.
type BatchJob struct {
	// Dir is scanned for Markdown files. It may be empty when Sources is set.
	Dir string
	// Sources lists extra files, directories or glob patterns.
	Sources   []string
	Recursive bool
	// OutputDir mirrors the source layout. Empty writes next to each source.
	OutputDir string
	Theme     string
	CSS       string
	CSSFile   string
	Mode      Mode
}

// BatchFile pairs a discovered source with its output path.
type BatchFile struct {
	Source string
	Output string
}

// BatchResult reports the outcome of one file in a batch.
type BatchResult struct {
	Source   string
	Output   string
	Err      error
	Duration time.Duration
}
