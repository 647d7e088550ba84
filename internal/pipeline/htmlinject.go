package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the document shell could not be rendered.
var ErrDocumentRender = errors.New("document rendering failed")

// DefaultTitle is used when neither the caller, the metadata nor a heading
// provides one.
const DefaultTitle = "Markdown Document"

// Head describes the <head> of a generated document.
type Head struct {
	Title     string
	Meta      Metadata
	Generator string
}

type metaTag struct {
	Name    string
	Content string
}

type documentData struct {
	Lang      string
	Title     string
	Tags      []metaTag
	Generator string
	Body      template.HTML
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html{{with .Lang}} lang="{{.}}"{{end}}>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
{{range .Tags}}<meta name="{{.Name}}" content="{{.Content}}">
{{end}}{{with .Generator}}<meta name="generator" content="{{.}}">
{{end}}</head>
<body>
{{.Body}}
</body>
</html>
`))

// ResolveTitle picks the document title: explicit, then metadata, then the
// first heading of the fragment, then DefaultTitle.
func ResolveTitle(explicit string, meta Metadata, fragment string) string {
	for _, t := range []string{explicit, meta.Title, FirstHeading(fragment)} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return DefaultTitle
}

// BuildDocument wraps an HTML fragment in a complete document and places
// css in a <style> block before </head>. The fragment is trusted as is.
func BuildDocument(fragment string, head Head, css string) (string, error) {
	data := documentData{
		Lang:      head.Meta.Extra["lang"],
		Title:     head.Title,
		Generator: head.Generator,
		Body:      template.HTML(fragment), //nolint:gosec // rendered by goldmark without raw HTML
	}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	for _, t := range []metaTag{
		{"author", head.Meta.Author},
		{"date", head.Meta.Date},
		{"description", head.Meta.Description},
		{"keywords", head.Meta.Keywords},
	} {
		if t.Content != "" {
			data.Tags = append(data.Tags, t)
		}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return InjectCSS(buf.String(), css), nil
}

// InjectCSS inserts a <style> block into an HTML document.
// Tries </head> first, then after <body>, then prepends.
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	styleBlock := "<style>\n" + escapeStyle(css) + "\n</style>\n"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}

	return styleBlock + htmlContent
}

// escapeStyle keeps stylesheet text from closing the <style> element.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
