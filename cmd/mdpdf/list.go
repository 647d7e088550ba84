package main

import (
	"fmt"
	"text/tabwriter"

	mdpdf "github.com/alnah/go-mdpdf"
)

// runThemes prints the bundled themes and those under --asset-path.
func runThemes(args []string, env *Environment) error {
	var assetPath string
	fs := newFlagSet("themes")
	fs.StringVar(&assetPath, "asset-path", "", "directory of custom themes")
	if err := parseFlags(fs, args, env.Stdout, printThemesUsage); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: themes takes no arguments", ErrUsage)
	}

	themes, err := mdpdf.ListThemes(assetPath)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, t := range themes {
		desc := t.Description
		if t.Custom {
			desc += " (custom)"
		}
		fmt.Fprintf(w, "%s\t%s\n", t.Name, desc)
	}
	return w.Flush()
}

// runExtras prints the Markdown extensions; defaults are marked.
func runExtras(args []string, env *Environment) error {
	fs := newFlagSet("extras")
	if err := parseFlags(fs, args, env.Stdout, printExtrasUsage); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: extras takes no arguments", ErrUsage)
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, ext := range mdpdf.Extensions() {
		marker := ""
		if ext.Default {
			marker = "default"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ext.Name, marker, ext.Description)
	}
	return w.Flush()
}
