package comparison

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Section is one reviewable unit of a notes document: a heading and
// everything up to the next heading of the same rank.
type Section struct {
	Title string
	HTML  string
}

// row pairs sections of the two documents by position. Right or Left is
// nil past the shorter document's length.
type row struct {
	Left  *Section
	Right *Section
}

func (r row) paired() bool { return r.Left != nil && r.Right != nil }

// splitSections parses a notes document and cuts its body into top-level
// sections at h1/h2 boundaries. Content before the first heading becomes a
// leading untitled section.
func splitSections(data []byte) ([]Section, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	root := contentRoot(doc)
	if root == nil {
		return nil, fmt.Errorf("document has no body")
	}

	var sections []Section
	var current []*html.Node
	currentTitle := ""
	var renderErr error

	flush := func() {
		if len(current) == 0 {
			return
		}
		var b strings.Builder
		for _, n := range current {
			if err := html.Render(&b, n); err != nil && renderErr == nil {
				renderErr = err
			}
		}
		sections = append(sections, Section{Title: currentTitle, HTML: b.String()})
		current = nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "h1" || c.Data == "h2") {
			flush()
			currentTitle = nodeText(c)
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		current = append(current, c)
	}
	flush()
	if renderErr != nil {
		return nil, fmt.Errorf("render section: %w", renderErr)
	}

	return sections, nil
}

// contentRoot returns the body, descending through a lone wrapper div so
// the styled notes page's container does not swallow every heading.
func contentRoot(doc *html.Node) *html.Node {
	body := findElement(doc, "body")
	if body == nil {
		return nil
	}

	root := body
	for {
		var onlyChild *html.Node
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
				continue
			}
			if onlyChild != nil {
				return root
			}
			onlyChild = c
		}
		if onlyChild == nil || onlyChild.Type != html.ElementNode || onlyChild.Data != "div" {
			return root
		}
		root = onlyChild
	}
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// pairSections aligns two section lists by index. Past the shorter list
// the remaining sections ride along unpaired; a partial view is more
// useful for review than none.
func pairSections(left, right []Section) []row {
	n := max(len(left), len(right))
	rows := make([]row, 0, n)
	for i := 0; i < n; i++ {
		var r row
		if i < len(left) {
			r.Left = &left[i]
		}
		if i < len(right) {
			r.Right = &right[i]
		}
		rows = append(rows, r)
	}
	return rows
}
