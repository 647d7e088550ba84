package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Fragment is the body HTML produced from one Markdown document.
type Fragment struct {
	HTML string
	Meta Metadata
	// MetaErr is set when a metadata block was found but could not be read.
	// The block is then rendered as part of the body.
	MetaErr error
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Fragment, error)
}

// GoldmarkOptions configures NewGoldmarkConverter.
type GoldmarkOptions struct {
	// Extensions lists enabled extension names. Nil selects DefaultExtensions.
	Extensions []string
	// Sanitize passes the rendered fragment through an allow-list policy.
	Sanitize bool
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md        goldmark.Markdown
	exts      extensionSet
	sanitizer *bluemonday.Policy
}

// NewGoldmarkConverter builds a goldmark instance for the enabled extensions.
// Returns ErrUnknownExtension for names outside the registry.
func NewGoldmarkConverter(opts GoldmarkOptions) (*GoldmarkConverter, error) {
	exts, err := newExtensionSet(opts.Extensions)
	if err != nil {
		return nil, err
	}

	var gmExts []goldmark.Extender
	if exts[ExtTables] {
		gmExts = append(gmExts, extension.Table)
	}
	if exts[ExtStrike] {
		gmExts = append(gmExts, extension.Strikethrough)
	}
	if exts[ExtTaskList] {
		gmExts = append(gmExts, extension.TaskList)
	}
	if exts[ExtLinkify] {
		gmExts = append(gmExts, extension.Linkify)
	}
	if exts[ExtFootnotes] {
		gmExts = append(gmExts, extension.Footnote)
	}
	if exts[ExtDefinitionLists] {
		gmExts = append(gmExts, extension.DefinitionList)
	}
	if exts[ExtSmartyPants] {
		gmExts = append(gmExts, extension.Typographer)
	}
	if exts[ExtFencedCode] {
		gmExts = append(gmExts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // colours come from the theme's code style CSS
			),
		))
	}

	var parserOpts []parser.Option
	// The TOC links to heading anchors, so it needs ids as well.
	if exts[ExtHeaderIDs] || exts[ExtTOC] {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if exts[ExtHardWraps] {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	// html.WithUnsafe is never set: raw HTML in the source is dropped.

	c := &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(gmExts...),
			goldmark.WithParserOptions(parserOpts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		exts: exts,
	}
	if opts.Sanitize {
		c.sanitizer = newSanitizer()
	}
	return c, nil
}

// Enabled reports whether the named extension is on.
func (c *GoldmarkConverter) Enabled(name string) bool {
	return c.exts[name]
}

// ToHTML converts Markdown content to an HTML fragment plus metadata.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frag := &Fragment{}
	if c.exts[ExtMetadata] {
		if block, body, ok := SplitFrontMatter(content); ok {
			meta, err := ParseMetadata(block)
			if err != nil {
				frag.MetaErr = err
			} else {
				frag.Meta = meta
				content = body
			}
		}
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return nil, r.err
	}

	body := r.html
	if c.sanitizer != nil {
		body = c.sanitizer.Sanitize(body)
	}
	if c.exts[ExtHighlight] {
		body = ConvertMarkPlaceholders(body)
	}
	if c.exts[ExtTOC] {
		body = ReplaceTOCMarker(body, DefaultTOC())
	}

	frag.HTML = body
	return frag, nil
}

// newSanitizer extends the UGC policy with what the renderer itself emits:
// heading ids, highlighting classes, footnote roles and task-list checkboxes.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id", "class", "role").Globally()
	p.AllowElements("mark")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// HighlightCSS returns the stylesheet for fenced code rendered with CSS
// classes, using the named chroma style. Unknown names use chroma's fallback.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		return "", nil
	}
	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", styleName, err)
	}
	return buf.String(), nil
}
