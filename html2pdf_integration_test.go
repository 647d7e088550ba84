//go:build integration

package mdpdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestEngines_Integration prints the same document with both engines.
// Rod downloads Chromium on first run if not found; chromedp needs a
// Chrome on PATH or ROD_BROWSER_BIN.
func TestEngines_Integration(t *testing.T) {
	doc := `<!DOCTYPE html>
<html>
<head><title>Test</title><style>@page { size: a4; }</style></head>
<body><h1>Hello, World!</h1><p>This is a test document.</p></body>
</html>`

	for _, engine := range []string{EngineRod, EngineChromedp} {
		t.Run(engine, func(t *testing.T) {
			pc, err := newPDFConverter(engine, testTimeout, zap.NewNop())
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = pc.Close() }()

			data, err := pc.ToPDF(context.Background(), doc, &pdfOptions{Footer: &Footer{ShowPageNumber: true}})
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}
			assertValidPDF(t, data)
		})
	}
}

func TestConvertFile_Integration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "basic.md")
	writeFile(t, src, "---\ntitle: Integration\n---\n# Heading\n\n```go\nfunc main() {}\n```\n\n![missing](nope.png)\n")

	conv := acquireConverter(t)
	out, err := conv.ConvertFile(context.Background(), FileRequest{Source: src, Theme: "academic"})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if out != filepath.Join(dir, "basic.pdf") {
		t.Errorf("output = %s", out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	assertValidPDF(t, data)
}

func TestConverterPool_ConvertBatch_Integration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, p := range []string{"a.md", "b/c.md", "b/d/e.md"} {
		writeFile(t, filepath.Join(dir, p), "# "+p)
	}

	pool, err := NewConverterPool(2, WithTimeout(testTimeout))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = pool.Close() }()

	results, err := pool.ConvertBatch(context.Background(), BatchJob{Dir: dir, Recursive: true})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Source, r.Err)
			continue
		}
		data, err := os.ReadFile(r.Output)
		if err != nil {
			t.Errorf("%s: %v", r.Output, err)
			continue
		}
		assertValidPDF(t, data)
	}
}
