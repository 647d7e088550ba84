package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := setupThemeDir(t, map[string]string{
		"brand.css":   "body { color: navy; }",
		"minimal.css": "body { color: gray; }",
	})
	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		theme    string
		contains string
		wantErr  error
	}{
		{name: "custom only", theme: "brand", contains: "navy"},
		{name: "custom shadows bundled", theme: "minimal", contains: "gray"},
		{name: "falls back to bundled", theme: "academic", contains: "Times New Roman"},
		{name: "unknown everywhere", theme: "neon", wantErr: ErrThemeNotFound},
		{name: "validation not masked", theme: "../brand", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStyle(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.theme, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("LoadStyle(%q) missing %q", tt.theme, tt.contains)
			}
		})
	}
}

func TestAssetResolver_Themes(t *testing.T) {
	t.Parallel()

	dir := setupThemeDir(t, map[string]string{
		"brand.css":  "a{}",
		"modern.css": "a{}",
	})
	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	themes, err := resolver.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}

	var names []string
	byName := map[string]Theme{}
	for _, th := range themes {
		names = append(names, th.Name)
		byName[th.Name] = th
	}
	if got := strings.Join(names, ","); got != "academic,brand,default,minimal,modern" {
		t.Errorf("Themes() names = %s", got)
	}
	if !byName["modern"].Custom {
		t.Error("modern should be shadowed by the custom theme")
	}
	if byName["modern"].CodeStyle == "" {
		t.Error("shadowing theme should keep the bundled code style")
	}
	if byName["default"].Custom {
		t.Error("default should stay bundled")
	}
}
