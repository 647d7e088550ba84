package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandUsage(t *testing.T) {
	t.Parallel()

	for name, usage := range commandUsage {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			usage(&buf)
			if !strings.HasPrefix(buf.String(), "Usage: mdpdf "+name) {
				t.Errorf("usage for %s starts with %q", name, strings.SplitN(buf.String(), "\n", 2)[0])
			}
		})
	}
}

func TestPrintUsage_ListsEveryCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	for name := range commandUsage {
		if !strings.Contains(buf.String(), "  "+name+" ") {
			t.Errorf("main usage missing command %s", name)
		}
	}
}
