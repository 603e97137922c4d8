// Package export writes one-way snapshots of the library in other formats.
// The text library file stays the only source the catalog loads from.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported export formats
var Formats = []string{"yaml", "parquet"}

// BookRecord is the flattened form of a book shared by every export format
type BookRecord struct {
	Index          int      `json:"index" yaml:"index" parquet:"index"`
	Title          string   `json:"title" yaml:"title" parquet:"title"`
	Description    string   `json:"description" yaml:"description" parquet:"description"`
	CurrentChapter int      `json:"current_chapter" yaml:"current_chapter" parquet:"current_chapter"`
	Genres         []string `json:"genres" yaml:"genres" parquet:"genres"`
	Tags           []string `json:"tags" yaml:"tags" parquet:"tags"`
	Reviews        []string `json:"reviews" yaml:"reviews,omitempty" parquet:"reviews"`
}

// Snapshot is the YAML document layout
type Snapshot struct {
	Generated string       `yaml:"generated"`
	Source    string       `yaml:"source"`
	Count     int          `yaml:"count"`
	Books     []BookRecord `yaml:"books"`
}

// Records flattens books in catalog order
func Records(books []*models.Book) []BookRecord {
	records := make([]BookRecord, 0, len(books))
	for i, b := range books {
		records = append(records, BookRecord{
			Index:          i,
			Title:          b.Title,
			Description:    b.Description,
			CurrentChapter: b.CurrentChapter(),
			Genres:         b.GenreNames(),
			Tags:           b.TagNames(),
			Reviews:        append([]string{}, b.Reviews...),
		})
	}
	return records
}

// WriteYAML writes a snapshot of books to w
func WriteYAML(w io.Writer, source string, books []*models.Book, now time.Time) error {
	snapshot := Snapshot{
		Generated: now.Format(time.RFC3339),
		Source:    source,
		Count:     len(books),
		Books:     Records(books),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&snapshot); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}

// ReadYAML decodes a snapshot written by WriteYAML
func ReadYAML(r io.Reader) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &snapshot, nil
}
