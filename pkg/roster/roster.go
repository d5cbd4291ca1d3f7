// Package roster classifies raw text fragments from committee pages into
// structured committee-member records.
package roster

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies a committee.
type Kind int

const (
	KindPC Kind = iota
	KindOC
	KindSC
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindPC:
		return "PC"
	case KindOC:
		return "OC"
	case KindSC:
		return "SC"
	case KindLocal:
		return "Local"
	}
	return "unknown"
}

// ParseKind parses a committee code ("PC", "OC", "SC", "Local").
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PC":
		return KindPC, nil
	case "OC":
		return KindOC, nil
	case "SC":
		return KindSC, nil
	case "LOCAL":
		return KindLocal, nil
	}
	return 0, fmt.Errorf("unknown committee kind: %q", s)
}

// Position is a committee position. Unrecognized role text fails closed to
// PositionMember.
type Position int

const (
	PositionMember Position = iota
	PositionChair
	PositionCoChair
	PositionAreaChair
)

func (p Position) String() string {
	switch p {
	case PositionChair:
		return "chair"
	case PositionCoChair:
		return "co_chair"
	case PositionAreaChair:
		return "area_chair"
	}
	return "member"
}

// ParsePosition parses a stored position string.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member":
		return PositionMember, nil
	case "chair":
		return PositionChair, nil
	case "co_chair":
		return PositionCoChair, nil
	case "area_chair":
		return PositionAreaChair, nil
	}
	return 0, fmt.Errorf("unknown position: %q", s)
}

// Member is one parsed committee member.
type Member struct {
	Name        string
	Committee   Kind
	Position    Position
	RoleTitle   string // empty unless a specific chair title was recognized
	Affiliation string
}

// ParseEntry classifies a raw fragment as a committee member or rejects it as
// noise, returning nil. The fragment is typically one list item or paragraph
// from an archived committee page.
func ParseEntry(text string, kind Kind) *Member {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	// Navigation and section-header noise
	if len(text) < 50 {
		for _, word := range entryBlacklist {
			if strings.Contains(lower, word) {
				return nil
			}
		}
	}

	if isShouting(text) {
		return nil
	}

	if strings.Contains(text, "http://") || strings.Contains(text, "https://") || strings.Contains(text, "www.") {
		return nil
	}

	alpha := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	if alpha < 3 {
		return nil
	}

	// Single words are usually menu items, unless parenthesized detail follows
	if len(strings.Fields(text)) < 2 && !strings.Contains(text, "(") {
		return nil
	}

	name, affiliation, roleText := splitEntry(text)

	if len(name) < 3 || len(name) > 100 {
		return nil
	}
	// Mis-split menu fragments tend to be fully lower or fully upper case
	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		return nil
	}

	position, roleTitle := Classify(text, roleText)

	return &Member{
		Name:        strings.Join(strings.Fields(name), " "),
		Committee:   kind,
		Position:    position,
		RoleTitle:   roleTitle,
		Affiliation: strings.TrimSpace(affiliation),
	}
}

// isShouting reports whether text is entirely uppercase, numeric, or spaces.
func isShouting(text string) bool {
	for _, r := range text {
		if !unicode.IsUpper(r) && !unicode.IsSpace(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// splitEntry decomposes a fragment into (name, affiliation, roleText) by
// trying a fixed priority of separators: the literal " Site " marker, a
// parenthesized span, a spaced dash, a comma, and finally the whole text.
func splitEntry(text string) (name, affiliation, roleText string) {
	switch {
	case strings.Contains(text, " Site "):
		return splitSiteEntry(text)

	case strings.Contains(text, "(") && strings.Contains(text, ")"):
		open := strings.Index(text, "(")
		name = strings.TrimSpace(text[:open])
		rest := text[open+1:]

		closing := strings.Index(rest, ")")
		if closing < 0 {
			return name, "", ""
		}
		inParens := rest[:closing]
		if containsAny(inParens, "chair", "member") {
			roleText = inParens
		} else {
			affiliation = inParens
		}
		if after := strings.TrimSpace(rest[closing+1:]); after != "" {
			roleText = strings.TrimSpace(roleText + " " + after)
		}
		return name, affiliation, roleText

	case strings.Contains(text, " - ") || strings.Contains(text, " – "):
		sep := " - "
		if !strings.Contains(text, sep) {
			sep = " – "
		}
		before, after, _ := strings.Cut(text, sep)
		name = strings.TrimSpace(before)
		after = strings.TrimSpace(after)
		if containsRoleKeyword(after) {
			roleText = after
		} else {
			affiliation = after
		}
		return name, affiliation, roleText

	case strings.Contains(text, ","):
		before, after, _ := strings.Cut(text, ",")
		name = strings.TrimSpace(before)
		after = strings.TrimSpace(after)
		if containsRoleKeyword(after) {
			roleText = after
		} else {
			affiliation = after
		}
		return name, affiliation, roleText

	default:
		return text, "", text
	}
}

// splitSiteEntry handles the "Name Affiliation Site role" format seen on
// committee index pages. The name starts as the first two tokens and extends
// up to five while tokens stay capitalized, stopping early at the first
// institution keyword so "Anne Broadbent University of Ottawa" splits before
// "University". Capitalized affiliations without a keyword ("MIT Computer
// Science") still mis-split; kept as-is for compatibility with existing data.
func splitSiteEntry(text string) (name, affiliation, roleText string) {
	before, after, _ := strings.Cut(text, " Site ")
	words := strings.Fields(before)

	nameEnd := len(words)
	if nameEnd > 2 {
		nameEnd = 2
		for i := 2; i < len(words) && i < 5; i++ {
			if institutionKeywords[strings.ToLower(words[i])] {
				break
			}
			if !startsUpper(words[i]) {
				break
			}
			nameEnd = i + 1
		}
	}

	name = strings.Join(words[:nameEnd], " ")
	if nameEnd < len(words) {
		affiliation = strings.Join(words[nameEnd:], " ")
	}
	return name, affiliation, strings.TrimSpace(after)
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func containsRoleKeyword(s string) bool {
	return containsAny(s, roleKeywords...)
}

func containsAny(s string, keywords ...string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify maps the fragment text and extracted role text to a position and
// optional role title. Rules run most specific first; anything without a
// recognized chair keyword is a plain member.
func Classify(fullText, roleText string) (Position, string) {
	combined := strings.ToLower(fullText + " " + roleText)
	for _, rule := range positionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				return rule.position, rule.title
			}
		}
	}
	return PositionMember, ""
}
