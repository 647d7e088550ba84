package assets

import (
	"errors"
	"testing"
)

func TestValidateThemeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "bundled theme", input: "academic"},
		{name: "hyphenated", input: "dark-report"},
		{name: "underscore and digits", input: "brand_2024"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "themes/modern", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "themes\\modern", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "modern.css", wantErr: ErrInvalidAssetName},
		{name: "traversal", input: "..", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateThemeName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateThemeName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
