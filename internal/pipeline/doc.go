// Package pipeline turns Markdown into a complete HTML document.
//
// Stages, in the order the converter runs them:
//   - Markdown preprocessing (line endings, ==highlight== placeholders)
//   - metadata block extraction
//   - Markdown to HTML via goldmark and the enabled extensions
//   - optional sanitisation and [TOC] replacement
//   - relative image and link rewriting to file:// URLs
//   - wrapping in a document shell with the stylesheet in <head>
//
// Printing to PDF lives in the root mdpdf package.
package pipeline
