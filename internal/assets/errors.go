package assets

import "errors"

// Sentinel errors for theme loading.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidAssetName = errors.New("invalid theme name")
	ErrInvalidBasePath  = errors.New("invalid asset path")
	ErrAssetRead        = errors.New("failed to read theme")

	// ErrPathTraversal means a theme file resolves outside the asset path,
	// typically through a symlink.
	ErrPathTraversal = errors.New("theme file escapes asset path")

	// ErrCatalog means the bundled catalog.yaml is inconsistent with the
	// embedded stylesheets.
	ErrCatalog = errors.New("invalid theme catalog")
)
