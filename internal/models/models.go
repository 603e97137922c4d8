package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidChapter is returned when a chapter is not a positive integer
var ErrInvalidChapter = errors.New("current chapter must be a positive integer")

// Genre is a normalized genre label
type Genre struct {
	name string
}

// NewGenre trims and lower-cases name
func NewGenre(name string) Genre {
	return Genre{name: normalize(name)}
}

// Name returns the normalized label
func (g Genre) Name() string { return g.name }

// Display returns the label with its first letter capitalized
func (g Genre) Display() string { return capitalize(g.name) }

func (g Genre) String() string { return g.name }

// Tag is a normalized free-form label
type Tag struct {
	name string
}

// NewTag trims and lower-cases name
func NewTag(name string) Tag {
	return Tag{name: normalize(name)}
}

// Name returns the normalized label
func (t Tag) Name() string { return t.name }

// Display returns the label with its first letter capitalized
func (t Tag) Display() string { return capitalize(t.name) }

func (t Tag) String() string { return t.name }

// NewGenres wraps each name, skipping names that are blank after trimming
func NewGenres(names []string) []Genre {
	genres := make([]Genre, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		genres = append(genres, NewGenre(name))
	}
	return genres
}

// NewTags wraps each name, skipping names that are blank after trimming
func NewTags(names []string) []Tag {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tags = append(tags, NewTag(name))
	}
	return tags
}

// Book is a tracked book and the reader's progress through it
type Book struct {
	Title       string
	Description string
	Genres      []Genre
	Tags        []Tag
	Reviews     []string

	currentChapter int
}

// NewBook builds a book, rejecting a non-positive chapter
func NewBook(title, description string, chapter int, genres []Genre, tags []Tag) (*Book, error) {
	b := &Book{
		Title:          title,
		Description:    description,
		Genres:         append([]Genre{}, genres...),
		Tags:           append([]Tag{}, tags...),
		Reviews:        []string{},
		currentChapter: 1,
	}
	if err := b.SetCurrentChapter(chapter); err != nil {
		return nil, err
	}
	return b, nil
}

// CurrentChapter returns the chapter the reader is on
func (b *Book) CurrentChapter() int {
	return b.currentChapter
}

// SetCurrentChapter updates the chapter. On error the previous value is kept.
func (b *Book) SetCurrentChapter(chapter int) error {
	if chapter <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChapter, chapter)
	}
	b.currentChapter = chapter
	return nil
}

// ParseChapter converts user or file input into a valid chapter number
func ParseChapter(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChapter, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidChapter, n)
	}
	return n, nil
}

// AddReview appends the trimmed review. Blank reviews are ignored.
func (b *Book) AddReview(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.Reviews = append(b.Reviews, text)
}

// GenreNames returns the normalized genre names in order
func (b *Book) GenreNames() []string {
	names := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		names[i] = g.Name()
	}
	return names
}

// TagNames returns the normalized tag names in order
func (b *Book) TagNames() []string {
	names := make([]string, len(b.Tags))
	for i, t := range b.Tags {
		names[i] = t.Name()
	}
	return names
}

// GenreList is the comma-joined display form used on screen and on disk
func (b *Book) GenreList() string {
	parts := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		parts[i] = g.Display()
	}
	return strings.Join(parts, ", ")
}

// TagList is the comma-joined display form used on screen and on disk
func (b *Book) TagList() string {
	parts := make([]string, len(b.Tags))
	for i, t := range b.Tags {
		parts[i] = t.Display()
	}
	return strings.Join(parts, ", ")
}

func (b *Book) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.Title)
	fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	fmt.Fprintf(&sb, "Current Chapter: %d\n", b.currentChapter)
	fmt.Fprintf(&sb, "Genres: %s\n", b.GenreList())
	fmt.Fprintf(&sb, "Tags: %s\n", b.TagList())
	if len(b.Reviews) == 0 {
		sb.WriteString("Reviews: None\n")
		return sb.String()
	}
	sb.WriteString("Reviews:\n")
	for _, r := range b.Reviews {
		fmt.Fprintf(&sb, "  - %s\n", r)
	}
	return sb.String()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
