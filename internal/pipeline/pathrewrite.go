package pipeline

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rewrite is the outcome of RewriteRelativePaths.
type Rewrite struct {
	HTML string
	// Missing lists image sources that point at no local file.
	// They are left in place and render absent.
	Missing []string
}

// RewriteRelativePaths turns relative img[src] and a[href] values into
// absolute file:// URLs under sourceDir, so the page still resolves them
// once it is loaded from a temp file.
//
// URLs with a scheme, protocol-relative URLs, anchors and absolute paths are
// kept. Paths escaping sourceDir are kept too. If sourceDir is empty the
// fragment is returned unchanged.
func RewriteRelativePaths(fragment, sourceDir string) (*Rewrite, error) {
	if sourceDir == "" {
		return &Rewrite{HTML: fragment}, nil
	}

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}

	rw := &rewriter{dir: absDir}
	rw.walk(root)

	out, err := renderFragment(root)
	if err != nil {
		return nil, err
	}
	return &Rewrite{HTML: out, Missing: rw.missing}, nil
}

// parseFragment parses body content under a synthetic document node.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// renderFragment renders the children of root without an html/body wrapper.
func renderFragment(root *html.Node) (string, error) {
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

type rewriter struct {
	dir     string
	missing []string
}

func (r *rewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			r.rewriteAttr(n, "src", true)
		case atom.A:
			r.rewriteAttr(n, "href", false)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *rewriter) rewriteAttr(n *html.Node, key string, checkExists bool) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		u, ok := localReference(attr.Val)
		if !ok {
			return
		}

		abs := filepath.Join(r.dir, filepath.FromSlash(u.Path))
		if !isPathUnderDir(abs, r.dir) {
			return
		}
		if checkExists {
			if _, err := os.Stat(abs); err != nil {
				r.missing = append(r.missing, attr.Val)
			}
		}

		n.Attr[i].Val = fileURL(abs, u.RawQuery, u.Fragment)
		return
	}
}

// localReference parses ref and reports whether it is a relative file path.
func localReference(ref string) (*url.URL, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return nil, false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return nil, false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return nil, false
	}
	return u, true
}

// isPathUnderDir reports whether absPath is dir or inside it.
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(absPath))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileURL builds a file:// URL for an absolute path. Windows paths get a
// leading slash so the drive letter lands in the path.
func fileURL(absPath, query, fragment string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: query, Fragment: fragment}
	return u.String()
}
