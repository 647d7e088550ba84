package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownExtension indicates an extension name outside the registry.
var ErrUnknownExtension = errors.New("unknown markdown extension")

// Extension names accepted by NewGoldmarkConverter.
const (
	ExtFencedCode      = "fenced-code-blocks"
	ExtTables          = "tables"
	ExtStrike          = "strike"
	ExtTaskList        = "task-list"
	ExtFootnotes       = "footnotes"
	ExtHeaderIDs       = "header-ids"
	ExtTOC             = "toc"
	ExtMetadata        = "metadata"
	ExtSmartyPants     = "smarty-pants"
	ExtLinkify         = "linkify"
	ExtDefinitionLists = "definition-lists"
	ExtHighlight       = "highlight"
	ExtHardWraps       = "hard-wraps"
)

// ExtensionInfo describes one Markdown extension.
type ExtensionInfo struct {
	Name        string
	Description string
	Default     bool
}

// registry is ordered for display; Extensions returns it as is.
var registry = []ExtensionInfo{
	{ExtFencedCode, "Syntax-highlighted fenced code blocks", true},
	{ExtTables, "GitHub-style tables", true},
	{ExtStrike, "~~Strikethrough~~ text", true},
	{ExtTaskList, "Task lists with - [ ] and - [x] checkboxes", true},
	{ExtFootnotes, "Footnotes with [^1] references", true},
	{ExtHeaderIDs, "Anchor ids on headings", true},
	{ExtTOC, "Replace a [TOC] paragraph with a numbered table of contents", true},
	{ExtMetadata, "Leading --- YAML block for title, author and date", true},
	{ExtSmartyPants, "Typographic quotes, dashes and ellipses", true},
	{ExtLinkify, "Turn bare URLs into links", false},
	{ExtDefinitionLists, "Term / : definition lists", false},
	{ExtHighlight, "==Highlighted== text rendered as <mark>", false},
	{ExtHardWraps, "Treat single newlines as line breaks", false},
}

// Extensions lists every supported extension in display order.
func Extensions() []ExtensionInfo {
	out := make([]ExtensionInfo, len(registry))
	copy(out, registry)
	return out
}

// DefaultExtensions returns the names enabled when none are configured.
func DefaultExtensions() []string {
	var names []string
	for _, e := range registry {
		if e.Default {
			names = append(names, e.Name)
		}
	}
	return names
}

// extensionSet is the resolved set of enabled extensions.
type extensionSet map[string]bool

// newExtensionSet validates names. A nil slice selects the defaults;
// an empty non-nil slice disables every extension.
func newExtensionSet(names []string) (extensionSet, error) {
	if names == nil {
		names = DefaultExtensions()
	}

	known := make(map[string]bool, len(registry))
	for _, e := range registry {
		known[e.Name] = true
	}

	set := make(extensionSet, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if !known[n] {
			unknown = append(unknown, n)
			continue
		}
		set[n] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, strings.Join(unknown, ", "))
	}
	return set, nil
}

// ValidateExtensions reports the first problem with a list of names.
func ValidateExtensions(names []string) error {
	_, err := newExtensionSet(names)
	return err
}
