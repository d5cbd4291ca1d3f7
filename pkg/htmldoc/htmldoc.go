// Package htmldoc provides structural helpers over parsed HTML documents:
// heading enumeration, subtree text extraction, and document-order slicing.
package htmldoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Heading is a heading element (h1-h6) with its level and collapsed text.
type Heading struct {
	Node  *html.Node
	Level int
	Text  string
}

// Parse parses an HTML document. x/net/html recovers from malformed markup,
// so this only fails on reader errors.
func Parse(data []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Walk visits every node in document (pre-) order.
func (d *Document) Walk(fn func(n *html.Node)) {
	walk(d.root, fn)
}

func walk(n *html.Node, fn func(n *html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// Headings returns all heading elements in document order.
func (d *Document) Headings() []Heading {
	var headings []Heading
	d.Walk(func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if level, ok := headingLevels[n.Data]; ok {
			headings = append(headings, Heading{
				Node:  n,
				Level: level,
				Text:  Text(n),
			})
		}
	})
	return headings
}

// Text returns the whitespace-collapsed text content of a node's subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Elements returns all element nodes with one of the given tag names.
func (d *Document) Elements(tags ...string) []*html.Node {
	var nodes []*html.Node
	d.Walk(func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for _, tag := range tags {
			if n.Data == tag {
				nodes = append(nodes, n)
				return
			}
		}
	})
	return nodes
}

// HasClass reports whether an element's class attribute contains the class.
func HasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// HasAncestor reports whether any ancestor of n satisfies the predicate.
func HasAncestor(n *html.Node, match func(*html.Node) bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if match(p) {
			return true
		}
	}
	return false
}

// Between returns the element nodes lying strictly between start and end in
// document order. The start node's own subtree is excluded; end may be nil,
// meaning everything after start to the end of the document.
func (d *Document) Between(start, end *html.Node) []*html.Node {
	var nodes []*html.Node
	collecting := false
	done := false

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if done {
			return
		}
		if n == start {
			collecting = true
			return // do not descend into the start node
		}
		if n == end {
			done = true
			return
		}
		if collecting && n.Type == html.ElementNode {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(d.root)
	return nodes
}
