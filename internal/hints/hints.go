// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect(engine string) string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	if engine == "chromedp" {
		hints = append(hints, "or try --engine rod, which downloads Chromium")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout or MDPDF_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or creating the config in the user
// config directory when it was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdpdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownTheme lists the themes that exist.
func ForUnknownTheme(available []string) string {
	if len(available) == 0 {
		return format("run 'mdpdf themes' to list themes")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownExtension points at the extension listing.
func ForUnknownExtension() string {
	return format("run 'mdpdf extras' to list extensions")
}

// ForStylesheetNotFound returns hints for a missing custom CSS file.
func ForStylesheetNotFound() string {
	return format("paths are relative to the working directory; use --custom-css for inline rules")
}

// ForSourceDecode returns hints for sources that are not UTF-8 text.
func ForSourceDecode() string {
	return format("save the file as UTF-8 (UTF-16 with a byte order mark is also accepted)")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
