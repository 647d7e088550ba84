package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// TOC depth defaults and bounds.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 3
	DefaultTOCTitle    = "Table of Contents"
)

// TOCData holds table of contents settings.
type TOCData struct {
	Title    string
	MinDepth int // first heading level listed
	MaxDepth int // last heading level listed
}

// DefaultTOC returns the settings used for a [TOC] marker.
func DefaultTOC() *TOCData {
	return &TOCData{Title: DefaultTOCTitle, MinDepth: DefaultTOCMinDepth, MaxDepth: DefaultTOCMaxDepth}
}

// headingInfo represents an extracted heading from HTML.
type headingInfo struct {
	Level int
	ID    string
	Text  string
}

var (
	// Captures: 1=level, 2=id, 3=inner HTML.
	headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

	// Any heading, with or without id. Captures: 1=inner HTML.
	anyHeadingPattern = regexp.MustCompile(`(?is)<h[1-6](?:\s[^>]*)?>(.*?)</h[1-6]>`)

	// A paragraph holding only a TOC marker: [TOC] or [[_TOC_]].
	tocMarkerPattern = regexp.MustCompile(`(?i)<p>\s*(?:\[TOC\]|\[\[_TOC_\]\])\s*</p>\n?`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// stripHTMLTags removes tags, decodes entities and trims whitespace.
// Decoding avoids double-escaping when the text is written back as HTML.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// FirstHeading returns the plain text of the first heading of any level,
// or "" when the fragment has none. The generated TOC title is skipped.
func FirstHeading(fragment string) string {
	for _, m := range anyHeadingPattern.FindAllStringSubmatch(fragment, -1) {
		if strings.Contains(m[0], `class="toc-title"`) {
			continue
		}
		if text := stripHTMLTags(m[1]); text != "" {
			return text
		}
	}
	return ""
}

// extractHeadings returns headings between minDepth and maxDepth.
// Headings without ids are skipped.
func extractHeadings(htmlContent string, minDepth, maxDepth int) []headingInfo {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []headingInfo
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, headingInfo{
			Level: level,
			ID:    m[2],
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// numberingState tracks hierarchical numbering for TOC entries.
// The shallowest heading seen first becomes depth 1, and skipped levels
// are treated as a direct child.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the number string ("1.2.") and the effective depth for level.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}

	// H1 -> H3 becomes depth 1 -> depth 2.
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC renders headings as a numbered <nav class="toc">.
// Items are <div>s so list styles from the theme do not apply.
func generateNumberedTOC(headings []headingInfo, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	numbering := &numberingState{}
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(depth-1)*1.5)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// buildTOC renders the TOC for fragment, or "" when it has no matching headings.
func buildTOC(fragment string, data *TOCData) string {
	minDepth, maxDepth := data.MinDepth, data.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return generateNumberedTOC(extractHeadings(fragment, minDepth, maxDepth), data.Title)
}

// HasTOC reports whether fragment already contains a generated TOC.
func HasTOC(fragment string) bool {
	return strings.Contains(fragment, `<nav class="toc">`)
}

// ReplaceTOCMarker replaces every [TOC] paragraph with a generated TOC.
// Markers are removed when the fragment has no headings to list.
func ReplaceTOCMarker(fragment string, data *TOCData) string {
	if !tocMarkerPattern.MatchString(fragment) {
		return fragment
	}
	toc := buildTOC(fragment, data)
	return tocMarkerPattern.ReplaceAllLiteralString(fragment, toc)
}

// InjectTOC puts a generated TOC at the top of fragment unless one is
// already present. If data is nil, fragment is returned unchanged.
func InjectTOC(fragment string, data *TOCData) string {
	if data == nil || HasTOC(fragment) {
		return fragment
	}
	toc := buildTOC(fragment, data)
	if toc == "" {
		return fragment
	}
	return toc + "\n" + fragment
}
