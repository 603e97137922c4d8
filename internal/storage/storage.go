package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// Field prefixes of a record block, in write order
const (
	prefixTitle       = "Title:"
	prefixDescription = "Description:"
	prefixChapter     = "Current Chapter:"
	prefixGenres      = "Genres:"
	prefixTags        = "Tags:"
	prefixReview      = "Review:"
)

// Encode writes one record block per book, each terminated by a blank line
func Encode(w io.Writer, books []*models.Book) error {
	bw := bufio.NewWriter(w)
	for _, b := range books {
		fmt.Fprintf(bw, "%s %s\n", prefixTitle, b.Title)
		fmt.Fprintf(bw, "%s %s\n", prefixDescription, b.Description)
		fmt.Fprintf(bw, "%s %d\n", prefixChapter, b.CurrentChapter())
		fmt.Fprintf(bw, "%s %s\n", prefixGenres, b.GenreList())
		fmt.Fprintf(bw, "%s %s\n", prefixTags, b.TagList())
		for _, r := range b.Reviews {
			fmt.Fprintf(bw, "%s %s\n", prefixReview, r)
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// recordState accumulates the fields of the record block being parsed
type recordState struct {
	title       string
	description string
	chapter     int
	genres      []models.Genre
	tags        []models.Tag
	reviews     []string
}

func newRecordState() recordState {
	return recordState{chapter: 1}
}

// complete reports whether the accumulated fields form a usable book
func (s *recordState) complete() bool {
	return s.title != "" && s.description != ""
}

func (s *recordState) book() *models.Book {
	b, err := models.NewBook(s.title, s.description, s.chapter, s.genres, s.tags)
	if err != nil {
		// chapter is always positive here, see apply
		b, _ = models.NewBook(s.title, s.description, 1, s.genres, s.tags)
	}
	for _, r := range s.reviews {
		b.AddReview(r)
	}
	return b
}

// apply updates the state from one trimmed, non-blank line
func (s *recordState) apply(line string, lineNum int) {
	switch {
	case strings.HasPrefix(line, prefixTitle):
		s.title = value(line, prefixTitle)
	case strings.HasPrefix(line, prefixDescription):
		s.description = value(line, prefixDescription)
	case strings.HasPrefix(line, prefixChapter):
		raw := value(line, prefixChapter)
		chapter, err := models.ParseChapter(raw)
		if err != nil {
			slog.Debug("Malformed chapter, defaulting to 1", "line", lineNum, "value", raw)
			chapter = 1
		}
		s.chapter = chapter
	case strings.HasPrefix(line, prefixGenres):
		s.genres = models.NewGenres(strings.Split(value(line, prefixGenres), ","))
	case strings.HasPrefix(line, prefixTags):
		s.tags = models.NewTags(strings.Split(value(line, prefixTags), ","))
	case strings.HasPrefix(line, prefixReview):
		s.reviews = append(s.reviews, value(line, prefixReview))
	default:
		slog.Debug("Ignoring unrecognized line", "line", lineNum)
	}
}

func value(line, prefix string) string {
	return strings.TrimSpace(line[len(prefix):])
}

// Decode parses record blocks. A block is kept only when it has both a title
// and a description. A final block without a trailing blank line is kept too.
func Decode(r io.Reader) ([]*models.Book, error) {
	var books []*models.Book
	state := newRecordState()

	flush := func() {
		if state.complete() {
			books = append(books, state.book())
		}
		state = newRecordState()
	}

	br := bufio.NewReader(r)
	lineNum := 0
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading records at line %d: %w", lineNum+1, err)
		}
		if raw != "" {
			lineNum++
			line := strings.TrimSpace(raw)
			if line == "" {
				flush()
			} else {
				state.apply(line, lineNum)
			}
		}
		if err != nil {
			break
		}
	}
	flush()

	return books, nil
}
