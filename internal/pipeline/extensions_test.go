package pipeline

import (
	"errors"
	"testing"
)

func TestExtensions(t *testing.T) {
	t.Parallel()

	exts := Extensions()
	if len(exts) != len(registry) {
		t.Fatalf("Extensions() returned %d entries, want %d", len(exts), len(registry))
	}

	seen := make(map[string]bool)
	for _, e := range exts {
		if e.Name == "" || e.Description == "" {
			t.Errorf("incomplete entry %+v", e)
		}
		if seen[e.Name] {
			t.Errorf("duplicate extension %q", e.Name)
		}
		seen[e.Name] = true
	}

	exts[0].Name = "mutated"
	if registry[0].Name == "mutated" {
		t.Error("Extensions() exposes the registry slice")
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	defaults := make(map[string]bool)
	for _, n := range DefaultExtensions() {
		defaults[n] = true
	}

	for _, name := range []string{ExtFencedCode, ExtTables, ExtStrike, ExtTaskList, ExtFootnotes, ExtHeaderIDs, ExtTOC, ExtMetadata, ExtSmartyPants} {
		if !defaults[name] {
			t.Errorf("%s should be on by default", name)
		}
	}
	for _, name := range []string{ExtLinkify, ExtDefinitionLists, ExtHighlight, ExtHardWraps} {
		if defaults[name] {
			t.Errorf("%s should be off by default", name)
		}
	}
}

func TestValidateExtensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		names   []string
		wantErr error
	}{
		{"nil means defaults", nil, nil},
		{"empty list", []string{}, nil},
		{"case and spaces", []string{" Tables ", "TOC"}, nil},
		{"blank entries skipped", []string{"", "strike"}, nil},
		{"unknown", []string{"tables", "mermaid"}, ErrUnknownExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := ValidateExtensions(tt.names); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtensions(%v) = %v, want %v", tt.names, err, tt.wantErr)
			}
		})
	}
}
