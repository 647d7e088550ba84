package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a Markdown file to PDF")
	fmt.Fprintln(w, "  batch      Convert a directory or list of Markdown files")
	fmt.Fprintln(w, "  preview    Write the styled HTML for a Markdown file")
	fmt.Fprintln(w, "  themes     List available themes")
	fmt.Fprintln(w, "  extras     List Markdown extensions")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpdf help <command>' for details on a specific command.")
}

// printCommonFlags prints flags shared by convert, batch and preview.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -t, --theme <name>         Theme (see 'mdpdf themes')")
	fmt.Fprintln(w, "  -c, --css <file>           Custom CSS file, applied after the theme")
	fmt.Fprintln(w, "      --custom-css <css>     Inline CSS, applied last")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory of custom themes (styles/<name>.css)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --extensions <a,b>     Enabled extensions (see 'mdpdf extras')")
	fmt.Fprintln(w, "      --sanitize             Sanitize rendered HTML")
	fmt.Fprintln(w, "      --toc                  Prepend a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>        Table of contents title")
	fmt.Fprintln(w, "      --toc-min-depth <n>    Shallowest heading level (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>    Deepest heading level (1-6)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --page-size <s>        Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>      Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>           Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --page-numbers         Print page numbers in the footer")
	fmt.Fprintln(w, "      --footer-text <s>      Footer text")
	fmt.Fprintln(w, "      --footer-position <s>  Footer position: left, center, right")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <name>        PDF engine: rod (default), chromedp")
	fmt.Fprintln(w, "      --timeout <d>          Render timeout per document (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "      --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                Only print errors")
	fmt.Fprintln(w, "  -v, --verbose              Print timing and debug logs")
	fmt.Fprintln(w, "  -h, --help                 Show this help")
}

// printEnvironment prints the environment variables the CLI reads.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPDF_CONFIG       Config file name or path")
	fmt.Fprintln(w, "  MDPDF_THEME        Theme")
	fmt.Fprintln(w, "  MDPDF_ENGINE       PDF engine")
	fmt.Fprintln(w, "  MDPDF_TIMEOUT      Render timeout")
	fmt.Fprintln(w, "  MDPDF_WORKERS      Batch workers")
	fmt.Fprintln(w, "  MDPDF_OUTPUT_DIR   Output directory")
	fmt.Fprintln(w, "  MDPDF_LOG_FORMAT   Log format: console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags override environment variables, which override the config file.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf convert <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to PDF. Use - to read from stdin (requires -o).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file (default: source with .pdf)")
	fmt.Fprintln(w, "      --preview              Write HTML instead of PDF")
	fmt.Fprintln(w, "      --title <s>            Document title (default: metadata or first heading)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	printEnvironment(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf preview <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the styled HTML document without starting a browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file (default: source with .html)")
	fmt.Fprintln(w, "      --title <s>            Document title (default: metadata or first heading)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf batch [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files in parallel. A failing file does not stop the batch.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>         Output directory, mirrors the source layout")
	fmt.Fprintln(w, "  -r, --recursive            Include subdirectories")
	fmt.Fprintln(w, "      --list <file>          Sources, one file, directory or glob per line")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --preview              Write HTML instead of PDF")
	fmt.Fprintln(w, "      --dry-run              Print planned conversions and exit")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	printEnvironment(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf themes [--asset-path <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List bundled themes and custom themes under the asset path.")
}

// printExtrasUsage prints usage for the extras command.
func printExtrasUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf extras")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Markdown extensions. Those marked default are enabled")
	fmt.Fprintln(w, "unless --extensions or markdown.extensions says otherwise.")
}

// printVersionUsage prints usage for the version command.
func printVersionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show version information.")
}

// commandUsage maps command names to their usage printers.
var commandUsage = map[string]func(io.Writer){
	"convert": printConvertUsage,
	"preview": printPreviewUsage,
	"batch":   printBatchUsage,
	"themes":  printThemesUsage,
	"extras":  printExtrasUsage,
	"version": printVersionUsage,
}

// runHelp prints general or per-command help.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	usage, ok := commandUsage[args[0]]
	if !ok {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	usage(env.Stdout)
	return ExitSuccess
}
