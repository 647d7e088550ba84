package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// Environment variable names.
const (
	envPrefix    = "MDPDF_"
	envConfig    = "MDPDF_CONFIG"
	envTheme     = "MDPDF_THEME"
	envEngine    = "MDPDF_ENGINE"
	envTimeout   = "MDPDF_TIMEOUT"
	envWorkers   = "MDPDF_WORKERS"
	envOutputDir = "MDPDF_OUTPUT_DIR"
	envLogFormat = "MDPDF_LOG_FORMAT"
)

// knownEnvVars lists the MDPDF_* names the CLI reads.
var knownEnvVars = map[string]bool{
	envConfig:    true,
	envTheme:     true,
	envEngine:    true,
	envTimeout:   true,
	envWorkers:   true,
	envOutputDir: true,
	envLogFormat: true,
}

// envConfig holds settings read from MDPDF_* variables.
// Zero values mean "not set".
type envConfig struct {
	ConfigPath string
	Theme      string
	Engine     string
	Timeout    time.Duration
	Workers    int
	OutputDir  string
}

// loadEnvConfig reads MDPDF_* variables. Invalid numeric or duration values
// are skipped and reported in warnings.
func loadEnvConfig(getenv func(string) string) (*envConfig, []string) {
	var warnings []string
	cfg := &envConfig{
		ConfigPath: strings.TrimSpace(getenv(envConfig)),
		Theme:      strings.TrimSpace(getenv(envTheme)),
		Engine:     strings.TrimSpace(getenv(envEngine)),
		OutputDir:  strings.TrimSpace(getenv(envOutputDir)),
	}

	if v := strings.TrimSpace(getenv(envTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: want a positive duration such as 45s", envTimeout, v))
		} else {
			cfg.Timeout = d
		}
	}

	if v := strings.TrimSpace(getenv(envWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > config.MaxWorkers {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: want 0-%d", envWorkers, v, config.MaxWorkers))
		} else {
			cfg.Workers = n
		}
	}

	return cfg, warnings
}

// apply overlays env settings on a config loaded from file.
func (e *envConfig) apply(cfg *config.Config) {
	if e.Theme != "" {
		cfg.Theme = e.Theme
	}
	if e.Engine != "" {
		cfg.Render.Engine = e.Engine
	}
	if e.Timeout > 0 {
		cfg.Render.Timeout = e.Timeout.String()
	}
	if e.Workers > 0 {
		cfg.Batch.Workers = e.Workers
	}
	if e.OutputDir != "" {
		cfg.Output.Dir = e.OutputDir
	}
}

// unknownEnvVars returns MDPDF_* names outside knownEnvVars, sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars prints a typo warning for each unknown MDPDF_* name.
func warnUnknownEnvVars(env *Environment) {
	if env.Environ == nil {
		return
	}
	for _, name := range unknownEnvVars(env.Environ()) {
		fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
	}
}
