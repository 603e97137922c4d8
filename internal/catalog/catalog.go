// Package catalog holds the ordered book collection bound to one library file.
// Every successful mutation rewrites the whole file before returning.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"github.com/lehigh-university-libraries/readinglog/internal/storage"
)

var (
	// ErrDuplicateTitle is returned by Add when the exact title is already present.
	ErrDuplicateTitle = errors.New("book already exists in the library")

	// ErrIndexOutOfRange is returned when an index does not name a book.
	ErrIndexOutOfRange = errors.New("no book at index")

	// ErrMissingField is returned by Add when the title or description is blank.
	ErrMissingField = errors.New("title and description are required")

	// ErrUnstorableText is returned when text would not survive a reload of
	// the library file: a line break anywhere, or a comma inside a label.
	ErrUnstorableText = errors.New("text cannot be stored in the library file")
)

// SaveFunc persists the full book list
type SaveFunc func(path string, books []*models.Book) error

// Catalog is the in-memory library mirrored to a text file
type Catalog struct {
	path  string
	books []*models.Book
	save  SaveFunc
}

// Open loads the library stored at path
func Open(path string) (*Catalog, error) {
	books, err := storage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return New(path, books), nil
}

// New binds books to path without reading it
func New(path string, books []*models.Book) *Catalog {
	if books == nil {
		books = []*models.Book{}
	}
	return &Catalog{
		path:  path,
		books: books,
		save:  storage.Save,
	}
}

// WithSaver replaces the persistence function, mainly for tests
func (c *Catalog) WithSaver(save SaveFunc) *Catalog {
	c.save = save
	return c
}

// Path returns the backing file path
func (c *Catalog) Path() string { return c.path }

// Len returns the number of books
func (c *Catalog) Len() int { return len(c.books) }

// Books returns the books in catalog order. The slice is a copy; the books are not.
func (c *Catalog) Books() []*models.Book {
	out := make([]*models.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Get returns the book at index
func (c *Catalog) Get(index int) (*models.Book, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	return c.books[index], nil
}

// Save writes the current state to the backing file
func (c *Catalog) Save() error {
	if err := c.save(c.path, c.books); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}
	return nil
}

// Add appends a new book. Title and description are trimmed and must not be
// blank. Titles must be unique (exact match).
func (c *Catalog) Add(title, description string, chapter int, genreNames, tagNames []string) (*models.Book, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, ErrMissingField
	}
	if err := checkText(title, description); err != nil {
		return nil, err
	}
	if err := checkLabels(genreNames, tagNames); err != nil {
		return nil, err
	}

	for _, b := range c.books {
		if b.Title == title {
			slog.Info("Book already exists", "title", title)
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
	}

	book, err := models.NewBook(title, description, chapter, models.NewGenres(genreNames), models.NewTags(tagNames))
	if err != nil {
		return nil, err
	}

	c.books = append(c.books, book)
	if err := c.Save(); err != nil {
		c.books = c.books[:len(c.books)-1]
		return nil, err
	}

	slog.Info("Book added", "title", title, "index", len(c.books)-1)
	return book, nil
}

// BookUpdate lists the fields to change in Edit. Nil means unchanged.
type BookUpdate struct {
	Title          *string
	Description    *string
	CurrentChapter *int
	Genres         []string
	Tags           []string
}

// Edit applies update to the book at index
func (c *Catalog) Edit(index int, update BookUpdate) (*models.Book, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	book := c.books[index]
	before := *book

	// validate everything first so a bad value changes nothing
	for _, field := range []*string{update.Title, update.Description} {
		if field != nil {
			if err := checkText(*field); err != nil {
				return nil, err
			}
		}
	}
	if err := checkLabels(update.Genres, update.Tags); err != nil {
		return nil, err
	}
	if update.CurrentChapter != nil {
		if err := book.SetCurrentChapter(*update.CurrentChapter); err != nil {
			return nil, err
		}
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) != "" {
		book.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil && strings.TrimSpace(*update.Description) != "" {
		book.Description = strings.TrimSpace(*update.Description)
	}
	if update.Genres != nil {
		book.Genres = models.NewGenres(update.Genres)
	}
	if update.Tags != nil {
		book.Tags = models.NewTags(update.Tags)
	}

	if err := c.Save(); err != nil {
		*book = before
		return nil, err
	}

	slog.Info("Book updated", "title", book.Title, "index", index)
	return book, nil
}

// AddReview appends a review to the book at index
func (c *Catalog) AddReview(index int, text string) (*models.Book, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := checkText(text); err != nil {
		return nil, err
	}
	book := c.books[index]
	count := len(book.Reviews)

	book.AddReview(text)
	if len(book.Reviews) == count {
		return book, nil
	}

	if err := c.Save(); err != nil {
		book.Reviews = book.Reviews[:count]
		return nil, err
	}

	slog.Info("Review added", "title", book.Title, "reviews", len(book.Reviews))
	return book, nil
}

// Remove deletes the book at index
func (c *Catalog) Remove(index int) (*models.Book, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	removed := c.books[index]

	remaining := make([]*models.Book, 0, len(c.books)-1)
	remaining = append(remaining, c.books[:index]...)
	remaining = append(remaining, c.books[index+1:]...)

	previous := c.books
	c.books = remaining
	if err := c.Save(); err != nil {
		c.books = previous
		return nil, err
	}

	slog.Info("Book removed", "title", removed.Title)
	return removed, nil
}

// checkText rejects line breaks left after trimming, which would split a
// record field in two
func checkText(values ...string) error {
	for _, v := range values {
		if strings.ContainsAny(strings.TrimSpace(v), "\r\n") {
			return fmt.Errorf("%w: %q contains a line break", ErrUnstorableText, v)
		}
	}
	return nil
}

// checkLabels also rejects commas, the separator of the Genres and Tags lines
func checkLabels(lists ...[]string) error {
	for _, names := range lists {
		if err := checkText(names...); err != nil {
			return err
		}
		for _, name := range names {
			if strings.Contains(name, ",") {
				return fmt.Errorf("%w: label %q contains a comma", ErrUnstorableText, name)
			}
		}
	}
	return nil
}

func (c *Catalog) checkIndex(index int) error {
	if index < 0 || index >= len(c.books) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}
