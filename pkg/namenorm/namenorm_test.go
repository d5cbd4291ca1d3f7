package namenorm

import (
	"testing"
)

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"ALICE", "alice"},
		{"  alice  ", "alice"},
		{"  Alice   Bob  ", "alice bob"},
		{"Alice\t\nBob", "alice bob"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Accents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José García", "jose garcia"},
		{"Müller", "muller"},
		{"Schrödinger", "schrodinger"},
		{"Cañón", "canon"},
		{"Zürich", "zurich"},
		{"Čech", "cech"},
		{"Éléonore", "eleonore"},
		{"Nguyễn", "nguyen"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_SpecialLetters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Łukasz", "lukasz"},
		{"Øresund", "oresund"},
		{"Åsa", "asa"},
		{"Björk", "bjork"},
		{"Straße", "strase"},
		{"Đorđe", "dorde"},
		{"Şebnem", "sebnem"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"José García", "  Alice   Bob  ", "Łukasz", "O'Brien", "", "Ludwig van Beethoven"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeLoose(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"O'Brien", "obrien"},
		{"Jean-Pierre", "jeanpierre"},
		{"Dr. Smith", "dr smith"},
		{"Smith, Jr.", "smith jr"},
		{"Jean-François", "jeanfrancois"},
	}
	for _, tt := range tests {
		if got := NormalizeLoose(tt.in); got != tt.want {
			t.Errorf("NormalizeLoose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice Bob", "AB"},
		{"John von Neumann", "JVN"},
		{"Alice", "A"},
	}
	for _, tt := range tests {
		if got := Initials(tt.in); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity_ExactAfterNormalization(t *testing.T) {
	if got := Similarity("José García", "Jose Garcia"); got != 1.0 {
		t.Errorf("Expected 1.0 for accent-equivalent names, got %f", got)
	}
	if got := Similarity("Müller", "Muller"); got != 1.0 {
		t.Errorf("Expected 1.0, got %f", got)
	}
}

func TestSimilarity_Loose(t *testing.T) {
	if got := Similarity("O'Brien", "OBrien"); got != 0.95 {
		t.Errorf("Expected 0.95 for loose match, got %f", got)
	}
}

func TestSimilarity_Jaccard(t *testing.T) {
	// "alice smith" vs "bob smith": intersection 1, union 3
	sim := Similarity("Alice Smith", "Bob Smith")
	if sim < 0.3 || sim > 0.4 {
		t.Errorf("Expected Jaccard ~0.33, got %f", sim)
	}

	if got := Similarity("John Doe", "Alice Smith"); got != 0.0 {
		t.Errorf("Expected 0.0 for disjoint names, got %f", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Alice Smith", "Bob Smith"},
		{"O'Brien", "OBrien"},
		{"José García", "Alice"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestSimilarity_SelfMatch(t *testing.T) {
	for _, name := range []string{"Alice", "José García", "Ludwig van Beethoven"} {
		if got := Similarity(name, name); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", name, name, got)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in     string
		given  string
		family string
	}{
		{"John Smith", "John", "Smith"},
		{"Ludwig van Beethoven", "Ludwig", "van Beethoven"},
		{"Leonardo da Vinci", "Leonardo", "da Vinci"},
		{"Galileo", "", "Galileo"},
		{"van Beethoven", "", "van Beethoven"},
		{"", "", ""},
	}
	for _, tt := range tests {
		given, family := Split(tt.in)
		if given != tt.given || family != tt.family {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.in, given, family, tt.given, tt.family)
		}
	}
}

func TestVariants(t *testing.T) {
	variants := Variants("Albert Einstein")

	want := []string{"albert einstein", "einstein", "a einstein"}
	for _, w := range want {
		found := false
		for _, v := range variants {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected variant %q in %v", w, variants)
		}
	}

	// First variant is always the normalized full form
	if variants[0] != "albert einstein" {
		t.Errorf("Expected normalized form first, got %q", variants[0])
	}
}

func TestVariants_LooseIncludedOnlyWhenDifferent(t *testing.T) {
	variants := Variants("Jean-Pierre Dupont")
	foundLoose := false
	for _, v := range variants {
		if v == "jeanpierre dupont" {
			foundLoose = true
		}
	}
	if !foundLoose {
		t.Errorf("Expected loose variant in %v", variants)
	}

	// No punctuation: loose form equals normalized, should not be duplicated
	plain := Variants("Alice Smith")
	seen := make(map[string]int)
	for _, v := range plain {
		seen[v]++
	}
	for v, n := range seen {
		if n > 1 {
			t.Errorf("Variant %q appears %d times", v, n)
		}
	}
}
