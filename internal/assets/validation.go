package assets

import (
	"fmt"
	"strings"
)

// ValidateThemeName rejects names that cannot map to styles/<name>.css:
// empty names, path separators and dots.
func ValidateThemeName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q may not contain '/', '\\' or '.'", ErrInvalidAssetName, name)
	}
	return nil
}
