package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the theme is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded themes are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a theme, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are not masked by the embedded copy.
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// Themes merges embedded and custom themes. A custom theme shadows a
// bundled theme of the same name.
func (r *AssetResolver) Themes() ([]Theme, error) {
	themes, err := r.embedded.Themes()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return themes, nil
	}

	custom, err := r.custom.Themes()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Theme, len(themes)+len(custom))
	for _, t := range themes {
		byName[t.Name] = t
	}
	for _, t := range custom {
		if bundled, ok := byName[t.Name]; ok {
			t.CodeStyle = bundled.CodeStyle
		}
		byName[t.Name] = t
	}

	merged := make([]Theme, 0, len(byName))
	for _, t := range byName {
		merged = append(merged, t)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged, nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
