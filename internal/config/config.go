package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxThemeLength       = 64   // asset name
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxInlineCSSLength   = 64 << 10
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxTextLength        = 500
	MaxTOCTitleLength    = 100
)

// MaxWorkers bounds batch.workers.
const MaxWorkers = 8

// configDirName is the directory searched under the user config dir.
const configDirName = "go-mdpdf"

// Config holds all settings a config file can provide.
// Zero values mean "not set" so flags and env vars can be layered on top.
type Config struct {
	Theme    string         `yaml:"theme"`
	CSS      CSSConfig      `yaml:"css"`
	Output   OutputConfig   `yaml:"output"`
	Batch    BatchConfig    `yaml:"batch"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Page     PageConfig     `yaml:"page"`
	Footer   FooterConfig   `yaml:"footer"`
	TOC      TOCConfig      `yaml:"toc"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// CSSConfig adds custom CSS on top of the theme.
type CSSConfig struct {
	File   string `yaml:"file"`
	Inline string `yaml:"inline"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = next to each source
}

// BatchConfig defines batch defaults.
type BatchConfig struct {
	Recursive bool `yaml:"recursive"`
	Workers   int  `yaml:"workers"` // 0 = auto
}

// MarkdownConfig selects Markdown extensions.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"` // nil = defaults
	Sanitize   bool     `yaml:"sanitize"`
}

// PageConfig overrides the theme's page box. Empty size keeps the theme's.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.75)
	Numbers     bool    `yaml:"numbers"`     // page numbers in the footer
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Position string `yaml:"position"` // "left", "center", "right" (default: "right")
	Text     string `yaml:"text"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"` // 1-6, default 1
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// RenderConfig selects the PDF engine.
type RenderConfig struct {
	Engine  string `yaml:"engine"`  // "rod", "chromedp"
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	Path string `yaml:"path"` // Empty = embedded themes only
}

// TimeoutDuration parses Render.Timeout. Zero means unset.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"theme", c.Theme, MaxThemeLength},
		{"css.file", c.CSS.File, MaxPathLength},
		{"css.inline", c.CSS.Inline, MaxInlineCSSLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"assets.path", c.Assets.Path, MaxPathLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Batch.Workers)
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position: %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	for _, d := range []struct {
		name  string
		value int
	}{{"toc.minDepth", c.TOC.MinDepth}, {"toc.maxDepth", c.TOC.MaxDepth}} {
		if d.value < 0 || d.value > 6 {
			return fmt.Errorf("%w: %s: must be between 1 and 6, got %d", ErrInvalidValue, d.name, d.value)
		}
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", "rod", "chromedp":
	default:
		return fmt.Errorf("%w: render.engine: %q (must be rod or chromedp)", ErrInvalidValue, c.Render.Engine)
	}

	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every setting falls back
// to the converter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or a YAML extension, it's treated
// as a file path. Otherwise, it's treated as a config name and searched in
// standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// SearchPaths lists where a config name is looked up, in order:
// ./name.yaml, ./name.yml, then the same names under
// <user config dir>/go-mdpdf/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
