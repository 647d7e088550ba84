package pipeline

// Notes:
// - numberingState is tested directly because its depth normalisation is
//   hard to observe through generated markup alone.
// - Markers are matched on goldmark output, so inputs below use the exact
//   "<p>[TOC]</p>" shape goldmark produces.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNumberingState - Hierarchical numbering
// ---------------------------------------------------------------------------

func TestNumberingState_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		levels     []int
		want       []string
		wantDepths []int
	}{
		{
			name:       "sequential h1s",
			levels:     []int{1, 1, 1},
			want:       []string{"1.", "2.", "3."},
			wantDepths: []int{1, 1, 1},
		},
		{
			name:       "nested",
			levels:     []int{1, 2, 3},
			want:       []string{"1.", "1.1.", "1.1.1."},
			wantDepths: []int{1, 2, 3},
		},
		{
			name:       "return to h1 resets counters",
			levels:     []int{1, 2, 1, 2},
			want:       []string{"1.", "1.1.", "2.", "2.1."},
			wantDepths: []int{1, 2, 1, 2},
		},
		{
			name:       "starts at h2",
			levels:     []int{2, 2, 3},
			want:       []string{"1.", "2.", "2.1."},
			wantDepths: []int{1, 1, 2},
		},
		{
			name:       "gap h1 to h3",
			levels:     []int{1, 3},
			want:       []string{"1.", "1.1."},
			wantDepths: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := &numberingState{}
			for i, level := range tt.levels {
				got, depth := state.next(level)
				if got != tt.want[i] {
					t.Errorf("next(%d) at step %d = %q, want %q", level, i, got, tt.want[i])
				}
				if depth != tt.wantDepths[i] {
					t.Errorf("next(%d) at step %d depth = %d, want %d", level, i, depth, tt.wantDepths[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExtractHeadings - Depth filtering and text cleanup
// ---------------------------------------------------------------------------

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	fragment := `<h1 id="intro">Intro</h1>
<h2 id="setup">Set <em>up</em> &amp; run</h2>
<h3>No id</h3>
<h4 id="deep">Deep</h4>`

	got := extractHeadings(fragment, 1, 3)
	want := []headingInfo{
		{Level: 1, ID: "intro", Text: "Intro"},
		{Level: 2, ID: "setup", Text: "Set up & run"},
	}

	if len(got) != len(want) {
		t.Fatalf("extractHeadings() returned %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// TestFirstHeading - Title fallback source
// ---------------------------------------------------------------------------

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"h1 with id", `<p>x</p><h1 id="a">Report</h1>`, "Report"},
		{"h3 first", `<h3>Small <code>start</code></h3><h1>Big</h1>`, "Small start"},
		{"entities decoded", `<h2>Q&amp;A</h2>`, "Q&A"},
		{"no heading", `<p>text</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FirstHeading(tt.fragment); got != tt.want {
				t.Errorf("FirstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReplaceTOCMarker / TestInjectTOC - TOC placement
// ---------------------------------------------------------------------------

func TestReplaceTOCMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fragment     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:     "marker replaced",
			fragment: "<p>[TOC]</p>\n<h1 id=\"a\">A</h1>\n<h2 id=\"b\">B</h2>\n",
			wantContains: []string{
				`<nav class="toc">`,
				`<h2 class="toc-title">Table of Contents</h2>`,
				`<a href="#a">1. A</a>`,
				`style="padding-left:1.5em"><a href="#b">1.1. B</a>`,
			},
			wantExcludes: []string{"[TOC]"},
		},
		{
			name:         "lowercase and gitlab markers",
			fragment:     "<p>[toc]</p>\n<p>[[_TOC_]]</p>\n<h1 id=\"a\">A</h1>\n",
			wantContains: []string{`<nav class="toc">`},
			wantExcludes: []string{"[toc]", "[[_TOC_]]"},
		},
		{
			name:         "marker removed without headings",
			fragment:     "<p>[TOC]</p>\n<p>body</p>\n",
			wantContains: []string{"<p>body</p>"},
			wantExcludes: []string{"[TOC]", "<nav"},
		},
		{
			name:         "marker inside text untouched",
			fragment:     "<p>see [TOC] here</p>\n<h1 id=\"a\">A</h1>\n",
			wantContains: []string{"see [TOC] here"},
			wantExcludes: []string{"<nav"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ReplaceTOCMarker(tt.fragment, DefaultTOC())
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}

func TestInjectTOC(t *testing.T) {
	t.Parallel()

	fragment := "<h1 id=\"a\">A</h1>\n<h2 id=\"b\">B</h2>\n"

	t.Run("prepends", func(t *testing.T) {
		t.Parallel()

		got := InjectTOC(fragment, &TOCData{Title: "Contents", MaxDepth: 1})
		if !strings.HasPrefix(got, `<nav class="toc"><h2 class="toc-title">Contents</h2>`) {
			t.Errorf("TOC not at top: %s", got)
		}
		if strings.Contains(got, `href="#b"`) {
			t.Error("MaxDepth 1 should exclude h2")
		}
	})

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()

		if got := InjectTOC(fragment, nil); got != fragment {
			t.Errorf("InjectTOC(nil) changed fragment: %s", got)
		}
	})

	t.Run("existing TOC kept", func(t *testing.T) {
		t.Parallel()

		once := ReplaceTOCMarker("<p>[TOC]</p>\n"+fragment, DefaultTOC())
		got := InjectTOC(once, DefaultTOC())
		if strings.Count(got, `<nav class="toc">`) != 1 {
			t.Errorf("expected a single TOC, got: %s", got)
		}
	})

	t.Run("title escaped", func(t *testing.T) {
		t.Parallel()

		got := InjectTOC(fragment, &TOCData{Title: "<Index>"})
		if !strings.Contains(got, "&lt;Index&gt;") {
			t.Errorf("title not escaped: %s", got)
		}
	})
}

func TestFirstHeading_SkipsTOCTitle(t *testing.T) {
	t.Parallel()

	fragment := ReplaceTOCMarker("<p>[TOC]</p>\n<h1 id=\"a\">Real Title</h1>\n", DefaultTOC())
	if got := FirstHeading(fragment); got != "Real Title" {
		t.Errorf("FirstHeading() = %q, want %q", got, "Real Title")
	}
}
