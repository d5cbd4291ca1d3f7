// Package locator finds the text fragments on a committee page most likely to
// describe committee membership. Strategies run from most to least structured;
// the first one producing any fragments wins.
package locator

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/daniel-butler/conf-roster/pkg/htmldoc"
	"github.com/daniel-butler/conf-roster/pkg/roster"
)

// Fragment length bounds: shorter than a name or longer than a roster line is
// noise.
const (
	minFragmentLen = 3
	maxFragmentLen = 300
)

type strategy func(doc *htmldoc.Document) []string

// Fragments returns candidate roster lines for the given committee kind, in
// document order. It performs no identity or role logic.
func Fragments(doc *htmldoc.Document, kind roster.Kind) []string {
	strategies := []strategy{
		sectionStrategy(kind),
		classStrategy,
		genericStrategy,
	}
	for _, s := range strategies {
		if frags := s(doc); len(frags) > 0 {
			return frags
		}
	}
	return nil
}

// sectionStrategy scans headings for the kind's keywords and collects list
// items (or paragraphs, if the section has no lists) between the matched
// heading and the next heading of equal or higher level.
func sectionStrategy(kind roster.Kind) strategy {
	keywords := roster.SectionKeywords(kind)
	return func(doc *htmldoc.Document) []string {
		if len(keywords) == 0 {
			return nil
		}

		headings := doc.Headings()
		for i, h := range headings {
			if !matchesAny(strings.ToLower(h.Text), keywords) {
				continue
			}

			var end *html.Node
			for _, next := range headings[i+1:] {
				if next.Level <= h.Level {
					end = next.Node
					break
				}
			}

			section := doc.Between(h.Node, end)

			frags := collectTexts(section, "li")
			if len(frags) == 0 {
				frags = collectTexts(section, "p")
			}
			if len(frags) > 0 {
				return frags
			}
		}
		return nil
	}
}

// classStrategy scans the whole document for elements with semantic roster
// classes.
func classStrategy(doc *htmldoc.Document) []string {
	var frags []string
	doc.Walk(func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if matchesMemberClass(n) {
			addFragment(&frags, htmldoc.Text(n))
		}
	})
	return frags
}

func matchesMemberClass(n *html.Node) bool {
	for _, class := range roster.MemberClasses() {
		if htmldoc.HasClass(n, class) {
			return true
		}
	}
	if n.Data == "div" {
		for _, class := range roster.MemberDivClasses() {
			if htmldoc.HasClass(n, class) {
				return true
			}
		}
	}
	return false
}

// genericStrategy is the last resort: every list item, plus paragraphs inside
// content divs or articles.
func genericStrategy(doc *htmldoc.Document) []string {
	var frags []string

	for _, li := range doc.Elements("li") {
		addFragment(&frags, htmldoc.Text(li))
	}

	for _, p := range doc.Elements("p") {
		if htmldoc.HasAncestor(p, func(a *html.Node) bool {
			if a.Type != html.ElementNode {
				return false
			}
			return a.Data == "article" || (a.Data == "div" && htmldoc.HasClass(a, "content"))
		}) {
			addFragment(&frags, htmldoc.Text(p))
		}
	}

	return frags
}

func collectTexts(nodes []*html.Node, tag string) []string {
	var frags []string
	for _, n := range nodes {
		if n.Data == tag {
			addFragment(&frags, htmldoc.Text(n))
		}
	}
	return frags
}

func addFragment(frags *[]string, text string) {
	if len(text) < minFragmentLen || len(text) > maxFragmentLen {
		return
	}
	*frags = append(*frags, text)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
