package assets

// DefaultStyleName is the theme used when none is requested.
const DefaultStyleName = "default"

// Theme describes one available theme.
type Theme struct {
	Name        string
	Description string
	// CodeStyle is the chroma style name for fenced code ("" when unset).
	CodeStyle string
	// Custom is true when the theme comes from a user asset directory.
	Custom bool
}

// AssetLoader defines the contract for loading theme stylesheets.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// Themes lists the available themes sorted by name.
	Themes() ([]Theme, error)
}
