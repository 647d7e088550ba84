package assets

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

//go:embed themes/*
var themeFS embed.FS

// catalogEntry mirrors one item of themes/catalog.yaml.
type catalogEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Base        string `yaml:"base"`
	CodeStyle   string `yaml:"code_style"`
}

type catalogFile struct {
	Themes []catalogEntry `yaml:"themes"`
}

// loadCatalog parses and checks the embedded catalog once per process.
var loadCatalog = sync.OnceValues(func() (map[string]catalogEntry, error) {
	data, err := themeFS.ReadFile("themes/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return parseCatalog(data)
})

// parseCatalog decodes catalog YAML and verifies every base exists and is not itself derived.
func parseCatalog(data []byte) (map[string]catalogEntry, error) {
	var file catalogFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}

	entries := make(map[string]catalogEntry, len(file.Themes))
	for _, e := range file.Themes {
		if err := ValidateThemeName(e.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		if _, dup := entries[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate theme %q", ErrCatalog, e.Name)
		}
		entries[e.Name] = e
	}

	for _, e := range entries {
		if e.Base == "" {
			continue
		}
		base, ok := entries[e.Base]
		if !ok {
			return nil, fmt.Errorf("%w: theme %q extends unknown %q", ErrCatalog, e.Name, e.Base)
		}
		if base.Base != "" {
			return nil, fmt.Errorf("%w: theme %q extends derived theme %q", ErrCatalog, e.Name, e.Base)
		}
	}
	return entries, nil
}

// EmbeddedLoader serves the bundled themes.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the stylesheet of a bundled theme.
// Derived themes are returned as base CSS followed by the theme's overrides.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateThemeName(name); err != nil {
		return "", err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return "", err
	}

	entry, ok := catalog[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	own, err := readThemeFile(entry.Name)
	if err != nil {
		return "", err
	}
	if entry.Base == "" {
		return own, nil
	}

	base, err := readThemeFile(entry.Base)
	if err != nil {
		return "", err
	}
	return base + "\n\n/* Theme: " + entry.Name + " */\n" + own, nil
}

// Themes lists the bundled themes sorted by name.
func (e *EmbeddedLoader) Themes() ([]Theme, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	themes := make([]Theme, 0, len(catalog))
	for _, entry := range catalog {
		themes = append(themes, Theme{
			Name:        entry.Name,
			Description: entry.Description,
			CodeStyle:   entry.CodeStyle,
		})
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes, nil
}

func readThemeFile(name string) (string, error) {
	content, err := themeFS.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrCatalog, name, err)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
