package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"path/filepath"
	"strings"
	"testing"
)

// stubContainer replaces IsInContainer for one test.
func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		engine      string
		contains    []string
		notContains []string
	}{
		{
			name:        "in CI",
			env:         map[string]string{"CI": "true"},
			engine:      "rod",
			contains:    []string{"hint:", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
			notContains: []string{"--engine"},
		},
		{
			name:      "in Docker",
			container: true,
			engine:    "rod",
			contains:  []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "sandbox already disabled",
			container:   true,
			env:         map[string]string{"ROD_NO_SANDBOX": "1"},
			engine:      "rod",
			notContains: []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "browser bin already set",
			env:         map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chrome"},
			engine:      "rod",
			notContains: []string{"ROD_BROWSER_BIN", "ROD_NO_SANDBOX"},
		},
		{
			name:     "chromedp suggests rod",
			env:      map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chrome"},
			engine:   "chromedp",
			contains: []string{"--engine rod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"} {
				t.Setenv(k, tt.env[k])
			}

			hint := ForBrowserConnect(tt.engine)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
			for _, bad := range tt.notContains {
				if strings.Contains(hint, bad) {
					t.Errorf("hint %q should not contain %q", hint, bad)
				}
			}
		})
	}
}

func TestForBrowserConnect_NothingToSuggest(t *testing.T) {
	stubContainer(t, false)
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chrome")

	if hint := ForBrowserConnect("rod"); hint != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "me", ".config", "go-mdpdf", "work.yaml")

	tests := []struct {
		name     string
		searched []string
		contains []string
	}{
		{"no paths", nil, []string{"--config"}},
		{"local only", []string{"work.yaml", "work.yml"}, []string{"--config"}},
		{"user dir searched", []string{"work.yaml", userPath}, []string{"--config", "or create " + userPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
		})
	}
}

func TestForUnknownTheme(t *testing.T) {
	t.Parallel()

	if got := ForUnknownTheme([]string{"academic", "default"}); got != "\n  hint: available: academic, default" {
		t.Errorf("ForUnknownTheme() = %q", got)
	}
	if got := ForUnknownTheme(nil); !strings.Contains(got, "mdpdf themes") {
		t.Errorf("ForUnknownTheme(nil) = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"output directory", ForOutputDirectory(), "writable"},
		{"unknown extension", ForUnknownExtension(), "mdpdf extras"},
		{"stylesheet", ForStylesheetNotFound(), "--custom-css"},
		{"decode", ForSourceDecode(), "UTF-8"},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.got, "\n  hint: ") {
			t.Errorf("%s: %q missing hint prefix", tt.name, tt.got)
		}
		if !strings.Contains(tt.got, tt.want) {
			t.Errorf("%s: %q missing %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if format("") != "" {
		t.Error("empty hint should format to empty string")
	}
	if formatHints(nil) != "" {
		t.Error("no hints should format to empty string")
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
