package catalog

import (
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"dune", "dune", 0},
		{"hobbit", "hobit", 1},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			if got := levenshteinDistance([]rune(tt.s1), []rune(tt.s2)); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	c, _ := seeded(t)
	f := NewFinder(c)

	got := titles(f.Suggest("dnue", 2))
	if len(got) != 1 || got[0] != "Dune" {
		t.Errorf("Expected only Dune, got %v", got)
	}

	if got := f.Suggest("the hobit", 3); len(got) != 1 || got[0].Title != "The Hobbit" {
		t.Errorf("Expected The Hobbit, got %v", titles(got))
	}

	if got := f.Suggest("Moby Dick", 3); len(got) != 0 {
		t.Errorf("Expected no suggestions, got %v", titles(got))
	}

	if got := f.Suggest("", 3); got != nil {
		t.Errorf("Expected nil for empty query, got %v", titles(got))
	}
}
