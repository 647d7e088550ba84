package mdpdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/stylesheet"
)

// defaultCodeStyle highlights code for themes that declare no code style.
const defaultCodeStyle = "github"

// Themes lists the bundled themes sorted by name.
func Themes() ([]ThemeInfo, error) {
	return ListThemes("")
}

// ListThemes lists bundled themes plus the custom themes found under
// assetPath, sorted by name. An empty assetPath lists bundled themes only.
func ListThemes(assetPath string) ([]ThemeInfo, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return listThemes(resolver)
}

func listThemes(loader assets.AssetLoader) ([]ThemeInfo, error) {
	themes, err := loader.Themes()
	if err != nil {
		return nil, err
	}
	out := make([]ThemeInfo, len(themes))
	for i, t := range themes {
		out[i] = ThemeInfo{Name: t.Name, Description: t.Description, Custom: t.Custom}
	}
	return out, nil
}

// Extensions lists every supported Markdown extension in display order.
func Extensions() []ExtensionInfo {
	return pipeline.Extensions()
}

// Themes lists the themes this converter can use.
func (c *Converter) Themes() ([]ThemeInfo, error) {
	return listThemes(c.assets)
}

// resolveStylesheet builds the document stylesheet: theme and code
// highlighting, then page settings, then the CSS file, then inline CSS.
func (c *Converter) resolveStylesheet(theme string, page *PageSettings, cssFile, inline string) (string, error) {
	base, err := c.themeStylesheet(theme)
	if err != nil {
		return "", err
	}
	if page != nil {
		base += "\n\n" + buildPageCSS(page)
	}

	var fileCSS string
	if cssFile != "" {
		if fileCSS, err = readStylesheet(cssFile); err != nil {
			return "", err
		}
		if err := c.validateCustomCSS(cssFile, fileCSS); err != nil {
			return "", err
		}
	}
	if err := c.validateCustomCSS("inline CSS", inline); err != nil {
		return "", err
	}

	return stylesheet.Merge(base, fileCSS, inline), nil
}

// themeStylesheet loads a theme and appends the highlight rules for its
// code style. Results are cached per converter.
func (c *Converter) themeStylesheet(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.cfg.theme
	}
	if name == "" {
		name = assets.DefaultStyleName
	}

	if css, ok := c.themeCache[name]; ok {
		return css, nil
	}

	css, err := c.assets.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrThemeNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", c.unknownTheme(name)
		}
		return "", fmt.Errorf("loading theme %q: %w", name, err)
	}

	if c.md.Enabled(pipeline.ExtFencedCode) {
		hl, err := pipeline.HighlightCSS(c.codeStyle(name))
		if err != nil {
			return "", err
		}
		css += "\n\n" + hl
	}

	c.themeCache[name] = css
	return css, nil
}

// codeStyle returns the chroma style declared for a theme.
func (c *Converter) codeStyle(name string) string {
	themes, err := c.assets.Themes()
	if err != nil {
		return defaultCodeStyle
	}
	for _, t := range themes {
		if t.Name == name && t.CodeStyle != "" {
			return t.CodeStyle
		}
	}
	return defaultCodeStyle
}

// unknownTheme builds an ErrUnknownTheme naming the available themes.
func (c *Converter) unknownTheme(name string) error {
	themes, err := c.assets.Themes()
	if err != nil || len(themes) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(names, ", "))
}

// readStylesheet reads and decodes a custom CSS file.
func readStylesheet(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrStylesheetNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrStylesheetNotFound, path, err)
	}
	css, err := fileutil.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrStylesheetDecode, path)
	}
	return css, nil
}

// validateCustomCSS rejects CSS the browser would silently misread.
func (c *Converter) validateCustomCSS(origin, css string) error {
	if strings.TrimSpace(css) == "" {
		return nil
	}
	rules, err := stylesheet.Validate(css)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStylesheetParse, origin, err)
	}
	c.logger.Debug("custom css", zap.String("origin", origin), zap.Int("rules", rules))
	return nil
}
