package htmldoc

import (
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<html><body>
<h1>QCrypt 2015</h1>
<h2>Program Committee</h2>
<ul>
  <li>Alice One</li>
  <li>Bob Two</li>
</ul>
<h2>Sponsors</h2>
<p>Acme Corp</p>
</body></html>`

func TestParse_Headings(t *testing.T) {
	doc, err := Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	headings := doc.Headings()
	if len(headings) != 3 {
		t.Fatalf("Expected 3 headings, got %d", len(headings))
	}
	if headings[0].Level != 1 || headings[0].Text != "QCrypt 2015" {
		t.Errorf("Unexpected first heading: %+v", headings[0])
	}
	if headings[1].Level != 2 || headings[1].Text != "Program Committee" {
		t.Errorf("Unexpected second heading: %+v", headings[1])
	}
}

func TestText_CollapsesWhitespace(t *testing.T) {
	doc, err := Parse([]byte(`<p>  Alice
		<b>One</b>   (Chair) </p>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	paras := doc.Elements("p")
	if len(paras) != 1 {
		t.Fatalf("Expected 1 paragraph, got %d", len(paras))
	}
	if got := Text(paras[0]); got != "Alice One (Chair)" {
		t.Errorf("Text = %q, want %q", got, "Alice One (Chair)")
	}
}

func TestBetween_BoundsToHeadings(t *testing.T) {
	doc, err := Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	headings := doc.Headings()
	between := doc.Between(headings[1].Node, headings[2].Node)

	var items []string
	for _, n := range between {
		if n.Data == "li" {
			items = append(items, Text(n))
		}
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 list items between headings, got %d", len(items))
	}
	if items[0] != "Alice One" || items[1] != "Bob Two" {
		t.Errorf("Unexpected items: %v", items)
	}

	// The paragraph after the second h2 must not be included
	for _, n := range between {
		if n.Data == "p" {
			t.Error("Between leaked past the end heading")
		}
	}
}

func TestBetween_NilEndRunsToDocumentEnd(t *testing.T) {
	doc, err := Parse([]byte(samplePage))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	headings := doc.Headings()
	between := doc.Between(headings[2].Node, nil)

	foundPara := false
	for _, n := range between {
		if n.Data == "p" {
			foundPara = true
		}
	}
	if !foundPara {
		t.Error("Expected trailing paragraph after last heading")
	}
}

func TestHasClass(t *testing.T) {
	doc, err := Parse([]byte(`<div class="committee-member featured">Alice One</div>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	divs := doc.Elements("div")
	if len(divs) != 1 {
		t.Fatalf("Expected 1 div, got %d", len(divs))
	}
	if !HasClass(divs[0], "committee-member") {
		t.Error("Expected committee-member class match")
	}
	if HasClass(divs[0], "member") {
		t.Error("Class match must be on whole tokens, not substrings")
	}
}

func TestHasAncestor(t *testing.T) {
	doc, err := Parse([]byte(`<article><p>Alice One</p></article><p>Outside</p>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	paras := doc.Elements("p")
	if len(paras) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(paras))
	}

	inArticle := func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "article"
	}
	if !HasAncestor(paras[0], inArticle) {
		t.Error("First paragraph should be inside article")
	}
	if HasAncestor(paras[1], inArticle) {
		t.Error("Second paragraph should not be inside article")
	}
}
