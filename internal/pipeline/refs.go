package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RefRewriter resolves local references inside rendered Markdown fragments.
//
// Rewrites:
//   - img[src]: relative image paths become file:// URLs, if they stay inside root
//   - a[href]: links to another file in the document become in-page anchors
//   - id and a[href="#..."]: scoped under the fragment's own section anchor,
//     so IDs from different files never collide with each other or with
//     section anchors
//
// URLs, absolute paths and references escaping root are left untouched.
type RefRewriter struct {
	root    string
	anchors map[string]string
}

// NewRefRewriter creates a rewriter for the project rooted at root.
// anchors maps slash-separated paths relative to root to section anchors.
func NewRefRewriter(root string, anchors map[string]string) *RefRewriter {
	return &RefRewriter{root: filepath.Clean(root), anchors: anchors}
}

// Rewrite resolves references in fragment, which was rendered from the file
// at relPath (slash-separated, relative to root).
func (r *RefRewriter) Rewrite(fragment, relPath string) (string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	r.rewriteNode(doc, path.Dir(relPath), r.anchors[relPath])

	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseFragment parses markup in body context and wraps the nodes in a
// container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func (r *RefRewriter) rewriteNode(n *html.Node, relDir, scope string) {
	if n.Type == html.ElementNode {
		if scope != "" {
			scopeIDs(n, scope)
		}
		switch n.DataAtom {
		case atom.Img:
			r.rewriteAttr(n, "src", relDir, r.imageURL)
		case atom.A:
			r.rewriteAttr(n, "href", relDir, r.sectionLink)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.rewriteNode(c, relDir, scope)
	}
}

// scopeIDs prefixes n's id, and the target of an in-page link, with scope.
func scopeIDs(n *html.Node, scope string) {
	for i, attr := range n.Attr {
		switch {
		case attr.Key == "id" && attr.Val != "":
			n.Attr[i].Val = scope + "-" + attr.Val
		case attr.Key == "href" && n.DataAtom == atom.A && len(attr.Val) > 1 && attr.Val[0] == '#':
			n.Attr[i].Val = "#" + scope + "-" + attr.Val[1:]
		}
	}
}

func (r *RefRewriter) rewriteAttr(n *html.Node, key, relDir string, resolve func(string) (string, bool)) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isLocalRef(attr.Val) {
			continue
		}
		target, ok := resolveRel(relDir, attr.Val)
		if !ok {
			continue
		}
		if val, ok := resolve(target); ok {
			n.Attr[i].Val = val
		}
	}
}

// imageURL converts a root-relative path to a file:// URL.
func (r *RefRewriter) imageURL(rel string) (string, bool) {
	abs := filepath.Join(r.root, filepath.FromSlash(rel))
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

// sectionLink maps a root-relative path to its section anchor.
func (r *RefRewriter) sectionLink(rel string) (string, bool) {
	anchor, ok := r.anchors[rel]
	if !ok {
		return "", false
	}
	return "#" + anchor, true
}

// resolveRel joins a reference onto the directory of the referencing file and
// reports false when the result escapes the root. Query and fragment parts
// are dropped.
func resolveRel(relDir, ref string) (string, bool) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	joined := path.Join(relDir, ref)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}
	return joined, true
}

// isLocalRef reports whether ref is a relative path (not a URL, anchor or
// absolute path).
func isLocalRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}
	if filepath.IsAbs(ref) {
		return false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}
	return true
}
