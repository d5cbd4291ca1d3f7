// Package ner provides Named Entity Recognition using prose, used as an
// advisory cross-check of the pattern-based committee parser.
package ner

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Entity represents a named entity found in text.
type Entity struct {
	Text  string
	Label string // PERSON, GPE (org/location), etc.
}

// Blocklist of terms that are commonly misidentified as people on
// conference pages
var notPeople = map[string]bool{
	// Committee and section headings
	"program committee":    true,
	"programme committee":  true,
	"organizing committee": true,
	"steering committee":   true,
	"local committee":      true,
	"general chair":        true,
	"program chair":        true,
	"invited speakers":     true,
	"keynote":              true,
	"tutorial":             true,
	"call for papers":      true,

	// Institutions (often tagged PERSON when they trail a name)
	"university":   true,
	"institute":    true,
	"max planck":   true,
	"eth zurich":   true,
	"mit":          true,
	"caltech":      true,
	"ibm research": true,
	"bell labs":    true,
	"microsoft research": true,

	// Navigation and sponsor boilerplate
	"home":         true,
	"registration": true,
	"accommodation": true,
	"sponsors":     true,
	"contact":      true,
	"venue":        true,
	"proceedings":  true,
	"accepted papers": true,
	"important dates": true,
	"read more":    true,
	"wayback machine": true,
	"internet archive": true,
}

// ExtractEntities extracts all named entities from text.
func ExtractEntities(text string) []Entity {
	if text == "" {
		return []Entity{}
	}

	// Strip HTML tags for cleaner NER
	text = stripHTML(text)

	doc, err := prose.NewDocument(text)
	if err != nil {
		return []Entity{}
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	return entities
}

// ExtractPeople extracts unique person names from text.
// Filters out headings, institutions, and navigation false positives.
func ExtractPeople(text string) []string {
	entities := ExtractEntities(text)

	seen := make(map[string]bool)
	var people []string

	for _, ent := range entities {
		if ent.Label == "PERSON" {
			name := normalizeName(ent.Text)
			nameLower := strings.ToLower(name)

			// Skip blocklisted terms
			if notPeople[nameLower] {
				continue
			}

			// Skip single words (usually false positives)
			if !strings.Contains(name, " ") && len(name) < 10 {
				continue
			}

			// Skip if it looks like a title/header (all caps or weird patterns)
			if name == strings.ToUpper(name) && len(name) > 3 {
				continue
			}

			if !seen[nameLower] {
				seen[nameLower] = true
				people = append(people, name)
			}
		}
	}

	return people
}

// ExtractOrganizations extracts unique organization names from text,
// useful for spotting affiliations the entry parser missed.
func ExtractOrganizations(text string) []string {
	entities := ExtractEntities(text)

	seen := make(map[string]bool)
	var orgs []string

	for _, ent := range entities {
		// prose uses GPE for geopolitical entities (orgs, places)
		if ent.Label == "GPE" || ent.Label == "ORG" {
			name := strings.TrimSpace(ent.Text)
			if !seen[name] {
				seen[name] = true
				orgs = append(orgs, name)
			}
		}
	}

	return orgs
}

// stripHTML removes HTML tags from text.
func stripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ')
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// normalizeName cleans up a person's name.
func normalizeName(name string) string {
	// Remove possessives
	name = strings.TrimSuffix(name, "'s")
	name = strings.TrimSuffix(name, "’s")
	return strings.TrimSpace(name)
}
