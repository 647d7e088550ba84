package assets

// Notes:
// - Overlay themes are checked by position: the base stylesheet must come
//   first so the overlay wins by cascade order.

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_LoadStyle - Bundled themes
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	base, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(default) error = %v", err)
	}
	if !strings.Contains(base, "@page") {
		t.Error("default theme should declare @page")
	}

	for _, name := range []string{"minimal", "academic", "modern"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			if !strings.HasPrefix(got, base) {
				t.Errorf("LoadStyle(%q) should start with the default theme", name)
			}
			marker := "/* Theme: " + name + " */"
			if !strings.Contains(got, marker) {
				t.Errorf("LoadStyle(%q) missing overlay marker %q", name, marker)
			}
		})
	}
}

func TestEmbeddedLoader_LoadStyle_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown theme", input: "neon", wantErr: ErrThemeNotFound},
		{name: "catalog file is not a theme", input: "catalog", wantErr: ErrThemeNotFound},
		{name: "traversal", input: "../default", wantErr: ErrInvalidAssetName},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
	}

	loader := NewEmbeddedLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loader.LoadStyle(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadStyle(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader_Themes - Catalog listing
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Themes(t *testing.T) {
	t.Parallel()

	themes, err := NewEmbeddedLoader().Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}

	want := []string{"academic", "default", "minimal", "modern"}
	if len(themes) != len(want) {
		t.Fatalf("Themes() returned %d themes, want %d", len(themes), len(want))
	}
	for i, name := range want {
		if themes[i].Name != name {
			t.Errorf("Themes()[%d] = %q, want %q", i, themes[i].Name, name)
		}
		if themes[i].Description == "" {
			t.Errorf("theme %q has no description", name)
		}
		if themes[i].CodeStyle == "" {
			t.Errorf("theme %q has no code style", name)
		}
		if themes[i].Custom {
			t.Errorf("theme %q marked custom", name)
		}
	}
}

// ---------------------------------------------------------------------------
// TestParseCatalog - Catalog consistency checks
// ---------------------------------------------------------------------------

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: "themes:\n  - name: a\n  - name: b\n    base: a\n",
		},
		{
			name:    "unknown base",
			data:    "themes:\n  - name: b\n    base: a\n",
			wantErr: true,
		},
		{
			name:    "chained base",
			data:    "themes:\n  - name: a\n  - name: b\n    base: a\n  - name: c\n    base: b\n",
			wantErr: true,
		},
		{
			name:    "duplicate",
			data:    "themes:\n  - name: a\n  - name: a\n",
			wantErr: true,
		},
		{
			name:    "unknown field",
			data:    "themes:\n  - name: a\n    colour: red\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseCatalog([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrCatalog) {
					t.Errorf("parseCatalog() error = %v, want ErrCatalog", err)
				}
				return
			}
			if err != nil {
				t.Errorf("parseCatalog() unexpected error: %v", err)
			}
		})
	}
}
