package catalog

import (
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// minSuggestScore is the lowest similarity worth offering as a suggestion
const minSuggestScore = 0.5

// Suggest returns up to limit books whose titles are close to title,
// best match first
func (f *Finder) Suggest(title string, limit int) []*models.Book {
	query := strings.ToLower(strings.TrimSpace(title))
	if query == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		book  *models.Book
		score float64
	}
	var candidates []scored
	for _, b := range f.catalog.books {
		score := similarity(query, strings.ToLower(b.Title))
		if score >= minSuggestScore {
			candidates = append(candidates, scored{book: b, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*models.Book, len(candidates))
	for i, c := range candidates {
		out[i] = c.book
	}
	return out
}

// similarity is 1 minus the edit distance over the longer length
func similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}
	maxLen := max(len(r1), len(r2))
	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
