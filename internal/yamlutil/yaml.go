// Package yamlutil is the single place the YAML library is imported.
// Config files, metadata blocks and the theme catalog all decode through it.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a single YAML document (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
// Used for metadata blocks, where any key is allowed.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
// Used for config files and the embedded theme catalog, where a typo must fail loudly.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// StringMap decodes a YAML mapping into string values.
// Scalars are formatted with %v and timestamps as dates. Sequences of scalars
// are joined with ", ". Nulls and nested mappings are skipped.
func StringMap(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if list, ok := v.([]any); ok {
			if joined, ok := joinScalars(list); ok {
				out[k] = joined
			}
			continue
		}
		if s, ok := scalarString(v); ok {
			out[k] = s
		}
	}
	return out, nil
}

func scalarString(v any) (string, bool) {
	switch tv := v.(type) {
	case nil, []any, map[string]any, map[any]any:
		return "", false
	case time.Time:
		return tv.Format(time.DateOnly), true
	default:
		return fmt.Sprint(v), true
	}
}

func joinScalars(list []any) (string, bool) {
	parts := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := scalarString(item)
		if !ok {
			return "", false
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), true
}
