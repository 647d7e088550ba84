// Package logging builds the zap loggers used by the CLI.
// The library itself logs to zap.NewNop() unless given a logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format names.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrInvalidFormat indicates an unknown log format.
var ErrInvalidFormat = errors.New("invalid log format")

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // console, json
	Output io.Writer // nil means stderr
}

// DefaultConfig logs warnings and errors to stderr in console format.
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// New creates a zap logger from cfg.
func New(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	encoder, err := createEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), parseLevel(cfg.Level))
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ValidateFormat checks a format name. Empty means console.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FormatConsole, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidFormat, format, FormatConsole, FormatJSON)
}

// parseLevel converts a level name to zapcore.Level. Unknown names are warn.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func createEncoder(format string) (zapcore.Encoder, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	if strings.ToLower(format) == FormatJSON {
		return zapcore.NewJSONEncoder(encoderConfig), nil
	}

	encoderConfig.TimeKey = zapcore.OmitKey
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewConsoleEncoder(encoderConfig), nil
}

// Printf adapts a logger to printf-style hooks such as automaxprocs.
func Printf(logger *zap.Logger) func(string, ...any) {
	sugar := logger.Sugar()
	return func(format string, args ...any) {
		sugar.Debugf(format, args...)
	}
}
