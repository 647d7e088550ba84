// Package stylesheet merges theme and user CSS into one document stylesheet
// and checks user CSS before it reaches the browser.
package stylesheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

// ErrParse indicates CSS that cannot be tokenised or has unbalanced blocks.
var ErrParse = errors.New("stylesheet parse error")

// CustomSeparator precedes every layer merged on top of the base stylesheet.
const CustomSeparator = "/* Custom Styles */"

// Merge appends each non-empty layer to base, in order, so later layers
// override earlier ones by normal cascade rules.
func Merge(base string, layers ...string) string {
	var buf strings.Builder
	buf.WriteString(base)
	for _, layer := range layers {
		if strings.TrimSpace(layer) == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(CustomSeparator)
		buf.WriteString("\n")
		buf.WriteString(layer)
	}
	return buf.String()
}

// Validate checks that css tokenises cleanly, that its blocks are balanced
// and that it parses into rules. It returns the number of top-level rules.
func Validate(css string) (int, error) {
	if err := checkTokens(css); err != nil {
		return 0, err
	}

	sheet, err := parser.Parse(css)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return len(sheet.Rules), nil
}

// checkTokens walks the token stream and tracks brace depth.
func checkTokens(css string) error {
	s := scanner.New(css)
	depth := 0
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			if depth != 0 {
				return fmt.Errorf("%w: %d unclosed block(s)", ErrParse, depth)
			}
			return nil
		case scanner.TokenError:
			return fmt.Errorf("%w: line %d, column %d: %s", ErrParse, tok.Line, tok.Column, tok.Value)
		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				depth++
			case "}":
				depth--
				if depth < 0 {
					return fmt.Errorf("%w: line %d, column %d: unexpected }", ErrParse, tok.Line, tok.Column)
				}
			}
		}
	}
}
