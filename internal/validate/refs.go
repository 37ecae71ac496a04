package validate

import (
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// pageRefs holds the local references found in one HTML page.
type pageRefs struct {
	Iframes []string // iframe[src]
	Links   []string // a[href] to .html/.htm files
}

// parseRefs collects the iframe sources and HTML page links of a document.
// External URLs, anchors and absolute paths are left out.
func parseRefs(r io.Reader) (pageRefs, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return pageRefs{}, err
	}
	var refs pageRefs
	collectRefs(doc, &refs)
	return refs, nil
}

func collectRefs(n *html.Node, refs *pageRefs) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "iframe":
			if v, ok := attr(n, "src"); ok && isRelativePath(v) {
				refs.Iframes = append(refs.Iframes, v)
			}
		case "a":
			if v, ok := attr(n, "href"); ok && isRelativePath(v) && isHTMLPath(stripSuffixes(v)) {
				refs.Links = append(refs.Links, v)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRefs(c, refs)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

// isRelativePath reports whether ref points at a file relative to the page.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if strings.HasPrefix(ref, "/") || filepath.IsAbs(ref) {
		return false
	}
	// Any scheme (http:, mailto:, data:, javascript:) is not a file.
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

// stripSuffixes drops the query and fragment and decodes percent escapes.
func stripSuffixes(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	return ref
}

func isHTMLPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// resolveRef joins ref to the directory of the referencing file. ok is false
// when the result leaves root.
func resolveRef(root, fromFile, ref string) (resolved string, ok bool) {
	resolved = filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(stripSuffixes(ref)))
	return resolved, isPathUnderDir(resolved, root)
}

// isPathUnderDir checks if p is dir or lies below it.
func isPathUnderDir(p, dir string) bool {
	cleanPath := filepath.Clean(p)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// relSlash returns p relative to root with forward slashes, for reports.
func relSlash(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
