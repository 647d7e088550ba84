// Package mdpdf converts Markdown documents to styled PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	out, err := conv.ConvertFile(ctx, mdpdf.FileRequest{Source: "report.md"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out) // report.pdf
//
// ConvertString converts Markdown held in memory, ConvertBatch converts a
// directory, and Convert returns the HTML and PDF bytes without touching
// the filesystem.
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (line endings, ==highlight== syntax)
//  2. Metadata block extraction (title, author, date)
//  3. Markdown to HTML via goldmark and the enabled extensions
//  4. Relative image rewriting and the HTML document shell
//  5. Stylesheet: theme, page settings, CSS file, inline CSS
//  6. PDF printing via headless Chrome (go-rod or chromedp)
//
// Set Mode to ModeHTML to stop after step 5 and write the HTML document.
//
// # Themes
//
// Bundled themes are default, minimal, academic and modern. Themes lists
// them. An unknown theme name fails with ErrUnknownTheme. Custom themes are
// read from <asset path>/styles/<name>.css:
//
//	conv, err := mdpdf.NewConverter(
//	    mdpdf.WithTheme("academic"),
//	    mdpdf.WithAssetPath("/path/to/assets"),
//	)
//
// Custom CSS given per request is appended after the theme, so its rules win.
//
// # Parallel Processing
//
// A Converter owns one browser and must not be shared between goroutines.
// ConverterPool holds several:
//
//	pool, err := mdpdf.NewConverterPool(mdpdf.ResolvePoolSize(0))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	results, err := pool.ConvertBatch(ctx, mdpdf.BatchJob{Dir: "docs", Recursive: true})
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. With the default rod engine a
// managed Chromium is downloaded on first run (~/.cache/rod/browser/).
// Set ROD_BROWSER_BIN to use a specific binary. The sandbox is disabled in
// CI, in containers and when running as root.
package mdpdf
