// Package assets provides the bundled document themes.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - bundled themes from go:embed, composed via catalog.yaml
//	    ├── FilesystemLoader  - user themes from {basePath}/styles/{name}.css
//	    └── AssetResolver     - combines both with custom-first fallback
//
// The embedded catalog lists each theme with a description, an optional base
// theme and the chroma style used for fenced code. A theme with a base is
// served as the base stylesheet followed by its own overrides, so later rules
// win by the normal cascade.
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
