package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// loadSettings layers defaults, the config file, MDPDF_* variables and the
// flags the user set, in increasing priority, and validates the result.
// Overlays apply command-specific flags after the common ones.
func loadSettings(fs *flag.FlagSet, f *commonFlags, env *Environment, overlays ...func(*config.Config)) (*config.Config, error) {
	envCfg, warnings := loadEnvConfig(env.Getenv)
	for _, w := range warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, withHint(err, hints.ForConfigNotFound(configSearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	envCfg.apply(cfg)
	f.apply(fs, cfg)
	for _, overlay := range overlays {
		overlay(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configSearchPaths returns the lookup paths for a config name, or nil
// when the user passed a path.
func configSearchPaths(name string) []string {
	if filepath.Ext(name) != "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	return config.SearchPaths(name)
}

// converterOptions turns a merged config into converter options.
func converterOptions(cfg *config.Config, logger *zap.Logger) ([]mdpdf.Option, error) {
	opts := []mdpdf.Option{
		mdpdf.WithLogger(logger),
		mdpdf.WithSanitize(cfg.Markdown.Sanitize),
	}
	if cfg.Theme != "" {
		opts = append(opts, mdpdf.WithTheme(cfg.Theme))
	}
	if cfg.Markdown.Extensions != nil {
		opts = append(opts, mdpdf.WithExtensions(cfg.Markdown.Extensions))
	}
	if cfg.Render.Engine != "" {
		opts = append(opts, mdpdf.WithEngine(cfg.Render.Engine))
	}

	timeout, err := cfg.Render.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, mdpdf.WithTimeout(timeout))
	}

	if cfg.Assets.Path != "" {
		opts = append(opts, mdpdf.WithAssetPath(cfg.Assets.Path))
	}
	if page := pageSettings(cfg.Page); page != nil {
		opts = append(opts, mdpdf.WithPage(page))
	}
	if footer := footerSettings(cfg); footer != nil {
		opts = append(opts, mdpdf.WithFooter(footer))
	}
	if cfg.TOC.Enabled {
		opts = append(opts, mdpdf.WithTOC(&mdpdf.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}))
	}
	return opts, nil
}

// pageSettings returns nil when no page field is set, keeping the theme's
// page box. Unset fields fall back to mdpdf.DefaultPageSettings.
func pageSettings(p config.PageConfig) *mdpdf.PageSettings {
	if p.Size == "" && p.Orientation == "" && p.Margin == 0 {
		return nil
	}
	page := mdpdf.DefaultPageSettings()
	if p.Size != "" {
		page.Size = p.Size
	}
	if p.Orientation != "" {
		page.Orientation = p.Orientation
	}
	if p.Margin != 0 {
		page.Margin = p.Margin
	}
	return page
}

// footerSettings returns nil unless page numbers or footer text are wanted.
func footerSettings(cfg *config.Config) *mdpdf.Footer {
	if !cfg.Page.Numbers && cfg.Footer.Text == "" {
		return nil
	}
	return &mdpdf.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Page.Numbers,
		Text:           cfg.Footer.Text,
	}
}
