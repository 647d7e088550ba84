package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through goldmark unchanged, so raw HTML never has to be enabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)
	fencePattern     = regexp.MustCompile("^\\s{0,3}(```|~~~)")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalises Markdown before parsing.
type CommonMarkPreprocessor struct {
	// Highlight turns ==text== into mark placeholders outside fenced code.
	Highlight bool
}

// PreprocessMarkdown normalises line endings and, when enabled, marks highlights.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	if p.Highlight {
		content = convertHighlights(content)
	}
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// convertHighlights rewrites ==text== to placeholders, line by line,
// leaving fenced code blocks untouched.
func convertHighlights(content string) string {
	lines := strings.Split(content, "\n")
	inFence := ""
	for i, line := range lines {
		if m := fencePattern.FindStringSubmatch(line); m != nil {
			switch {
			case inFence == "":
				inFence = m[1]
			case inFence == m[1]:
				inFence = ""
			}
			continue
		}
		if inFence != "" {
			continue
		}
		lines[i] = highlightPattern.ReplaceAllString(line, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}
	return strings.Join(lines, "\n")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after goldmark so the markup never goes through the parser.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
