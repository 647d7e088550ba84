package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// setupThemeDir creates {dir}/styles with the given name -> css files.
func setupThemeDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	stylesDir := filepath.Join(dir, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		t.Fatalf("creating styles dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(stylesDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "valid directory",
			path: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name:    "empty path",
			path:    func(*testing.T) string { return "" },
			wantErr: ErrInvalidBasePath,
		},
		{
			name:    "missing directory",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			wantErr: ErrInvalidBasePath,
		},
		{
			name: "file instead of directory",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "file.css")
				if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
				return p
			},
			wantErr: ErrInvalidBasePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFilesystemLoader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := setupThemeDir(t, map[string]string{"brand.css": "body { color: navy; }"})
	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadStyle("brand")
	if err != nil {
		t.Fatalf("LoadStyle(brand) error = %v", err)
	}
	if got != "body { color: navy; }" {
		t.Errorf("LoadStyle(brand) = %q", got)
	}

	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrThemeNotFound", err)
	}
	if _, err := loader.LoadStyle("../brand"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../brand) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	outside := filepath.Join(t.TempDir(), "secret.css")
	if err := os.WriteFile(outside, []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := setupThemeDir(t, nil)
	if err := os.Symlink(outside, filepath.Join(dir, "styles", "escape.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("escape"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(escape) error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_Themes(t *testing.T) {
	t.Parallel()

	dir := setupThemeDir(t, map[string]string{
		"zeta.css":     "a{}",
		"alpha.css":    "a{}",
		"notes.txt":    "ignored",
		"bad.name.css": "ignored",
	})
	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	themes, err := loader.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}
	if len(themes) != 2 || themes[0].Name != "alpha" || themes[1].Name != "zeta" {
		t.Fatalf("Themes() = %+v, want alpha and zeta", themes)
	}
	if !themes[0].Custom {
		t.Error("custom theme not marked Custom")
	}
}

func TestFilesystemLoader_Themes_NoStylesDir(t *testing.T) {
	t.Parallel()

	loader, err := NewFilesystemLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	themes, err := loader.Themes()
	if err != nil || len(themes) != 0 {
		t.Errorf("Themes() = %v, %v; want empty, nil", themes, err)
	}
}
