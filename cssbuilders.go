package mdpdf

import (
	"fmt"
	"html"
	"strings"
)

// defaultFontFamily is the font stack for the Chrome footer template.
const defaultFontFamily = "sans-serif"

// buildPageCSS generates the @page rule for explicit page settings.
// It comes after the theme so it overrides the theme's page box.
func buildPageCSS(p *PageSettings) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("/* Page settings */\n@page {\n  size: %s %s;\n  margin: %.2fin;\n}\n",
		strings.ToLower(p.Size), strings.ToLower(p.Orientation), p.Margin)
}

// buildFooterTemplate generates the HTML template for Chrome's native footer.
// Page numbers use Chrome's pageNumber and totalPages classes.
func buildFooterTemplate(f *Footer) string {
	if f == nil {
		return "<span></span>"
	}

	var parts []string
	if f.Text != "" {
		parts = append(parts, html.EscapeString(f.Text))
	}
	if f.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if len(parts) == 0 {
		return "<span></span>"
	}

	textAlign := "right"
	switch strings.ToLower(f.Position) {
	case "left":
		textAlign = "left"
	case "center":
		textAlign = "center"
	}

	return fmt.Sprintf(`<div style="font-size: 9px; font-family: %s; color: #888; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		defaultFontFamily, textAlign, strings.Join(parts, " - "))
}
