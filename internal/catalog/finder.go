package catalog

import (
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// Finder runs read-only queries over a catalog
type Finder struct {
	catalog *Catalog
}

// NewFinder creates a finder for c
func NewFinder(c *Catalog) *Finder {
	return &Finder{catalog: c}
}

// ByTitle returns books whose title contains keyword, ignoring case
func (f *Finder) ByTitle(keyword string) []*models.Book {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var matches []*models.Book
	for _, b := range f.catalog.books {
		if strings.Contains(strings.ToLower(b.Title), keyword) {
			matches = append(matches, b)
		}
	}
	return matches
}

// ByGenres takes a comma-separated list of genre names and returns books
// having at least one of them
func (f *Finder) ByGenres(query string) []*models.Book {
	wanted := make(map[string]struct{})
	for _, g := range models.NewGenres(strings.Split(query, ",")) {
		wanted[g.Name()] = struct{}{}
	}
	if len(wanted) == 0 {
		return nil
	}

	var matches []*models.Book
	for _, b := range f.catalog.books {
		for _, g := range b.Genres {
			if _, ok := wanted[g.Name()]; ok {
				matches = append(matches, b)
				break
			}
		}
	}
	return matches
}
