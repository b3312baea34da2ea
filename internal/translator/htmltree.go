package translator

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// skippedParents are elements whose text children are machinery, not prose.
var skippedParents = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"title":  true,
}

func parseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func renderDocument(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}
	return buf.Bytes(), nil
}

// collectTextNodes walks the tree in document order and returns the
// human-visible text nodes. Whitespace-only nodes are skipped so markup
// indentation survives untouched.
func collectTextNodes(doc *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node, skipped bool)
	walk = func(n *html.Node, skipped bool) {
		if n.Type == html.ElementNode && skippedParents[n.Data] {
			skipped = true
		}
		if n.Type == html.TextNode && !skipped && strings.TrimSpace(n.Data) != "" {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, skipped)
		}
	}
	walk(doc, false)
	return out
}

// elementSignature lists element tags in document order. Two documents
// with equal signatures have the same markup elements in the same nesting
// order, which is the property the comparison view depends on.
func elementSignature(doc *html.Node) []string {
	var sig []string
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode {
			sig = append(sig, fmt.Sprintf("%d:%s", depth, n.Data))
			depth++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth)
		}
	}
	walk(doc, 0)
	return sig
}

func signaturesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// setDocumentLang rewrites (or adds) the lang attribute on <html>.
func setDocumentLang(doc *html.Node, lang string) {
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "html" {
			for i, attr := range n.Attr {
				if attr.Key == "lang" {
					n.Attr[i].Val = lang
					return true
				}
			}
			n.Attr = append(n.Attr, html.Attribute{Key: "lang", Val: lang})
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)
}
