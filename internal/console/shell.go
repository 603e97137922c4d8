package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

const menu = `
Menu:
1. Add Book
2. Edit Book
3. Remove Book
4. Search Library
5. Display Library Contents
6. Add Review
7. Quit
`

// Shell is the interactive menu over one catalog
type Shell struct {
	catalog *catalog.Catalog
	finder  *catalog.Finder
	remover *catalog.Remover
	prompt  *Prompter
	out     io.Writer
	delay   time.Duration
	sleep   func(time.Duration)
}

// NewShell creates a shell reading answers from in. delay is the pause
// between records when listing; zero disables it.
func NewShell(c *catalog.Catalog, in io.Reader, out io.Writer, delay time.Duration) *Shell {
	p := NewPrompter(in, out)
	return &Shell{
		catalog: c,
		finder:  catalog.NewFinder(c),
		remover: catalog.NewRemover(c, p.Confirm),
		prompt:  p,
		out:     out,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// Run shows the library and loops over the menu until the user quits,
// input ends, ctx is cancelled, or the library file cannot be written.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Loaded %d book(s) from %s\n", s.catalog.Len(), s.catalog.Path())
	s.display()

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, "\nInterrupted.")
			return nil
		}

		fmt.Fprint(s.out, menu)
		choice, err := s.prompt.Ask("Choose an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.add()
		case "2":
			err = s.edit()
		case "3":
			err = s.remove()
		case "4":
			err = s.search()
		case "5":
			s.display()
		case "6":
			err = s.review()
		case "7", "q", "quit":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice.")
		}

		if err = s.report(err); err != nil {
			return err
		}
	}
}

// report prints recoverable errors and returns the rest
func (s *Shell) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		fmt.Fprintln(s.out, "\nInput ended.")
		return nil
	case errors.Is(err, catalog.ErrDuplicateTitle),
		errors.Is(err, catalog.ErrIndexOutOfRange),
		errors.Is(err, catalog.ErrMissingField),
		errors.Is(err, catalog.ErrUnstorableText),
		errors.Is(err, models.ErrInvalidChapter):
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil
	default:
		return err
	}
}

func (s *Shell) add() error {
	title, err := s.askRequired("Title: ", "A title is required.")
	if err != nil {
		return err
	}
	description, err := s.askRequired("Description: ", "A description is required.")
	if err != nil {
		return err
	}
	rawChapter, err := s.prompt.Ask("Current Chapter: ")
	if err != nil {
		return err
	}
	chapter, err := models.ParseChapter(rawChapter)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid chapter number. Defaulting to 1.")
		chapter = 1
	}
	genres, err := s.prompt.Ask("Genres (comma separated): ")
	if err != nil {
		return err
	}
	tags, err := s.prompt.Ask("Tags (comma separated): ")
	if err != nil {
		return err
	}

	book, err := s.catalog.Add(title, description, chapter, SplitList(genres), SplitList(tags))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Book '%s' has been added.\n", book.Title)
	return nil
}

// askRequired repeats the question until the answer is not blank
func (s *Shell) askRequired(label, notice string) (string, error) {
	for {
		answer, err := s.prompt.Ask(label)
		if err != nil || answer != "" {
			return answer, err
		}
		fmt.Fprintln(s.out, notice)
	}
}

func (s *Shell) askIndex() (int, bool, error) {
	raw, err := s.prompt.Ask("Enter Book Number: ")
	if err != nil {
		return 0, false, err
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(s.out, "There is no book with that number.")
		return 0, false, nil
	}
	return index, true, nil
}

func (s *Shell) edit() error {
	index, ok, err := s.askIndex()
	if err != nil || !ok {
		return err
	}
	if _, err := s.catalog.Get(index); err != nil {
		return err
	}

	var update catalog.BookUpdate
	answers := make([]string, 5)
	questions := []string{
		"Change Title? (leave blank to skip): ",
		"Change Description? (leave blank to skip): ",
		"Chapter Update (leave blank to skip): ",
		"Update Genres? (comma separated, blank to skip): ",
		"Update Tags? (comma separated, blank to skip): ",
	}
	for i, q := range questions {
		if answers[i], err = s.prompt.Ask(q); err != nil {
			return err
		}
	}

	if answers[0] != "" {
		update.Title = &answers[0]
	}
	if answers[1] != "" {
		update.Description = &answers[1]
	}
	if answers[2] != "" {
		chapter, err := strconv.Atoi(answers[2])
		if err != nil {
			fmt.Fprintln(s.out, "Invalid chapter number. Book not updated.")
			return nil
		}
		update.CurrentChapter = &chapter
	}
	if answers[3] != "" {
		update.Genres = SplitList(answers[3])
	}
	if answers[4] != "" {
		update.Tags = SplitList(answers[4])
	}

	book, err := s.catalog.Edit(index, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Book '%s' has been updated successfully.\n", book.Title)
	return nil
}

func (s *Shell) remove() error {
	title, err := s.prompt.Ask("Enter the title of the book you want to delete: ")
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(s.out, "No title entered.")
		return nil
	}

	result, err := s.remover.RemoveByTitle(title)
	if err != nil {
		return err
	}
	switch result {
	case catalog.RemoveNotFound:
		fmt.Fprintf(s.out, "No book found with the title '%s'.\n", title)
		PrintSuggestions(s.out, s.finder.Suggest(title, 3))
	case catalog.RemoveCancelled:
		fmt.Fprintln(s.out, "Title mismatch. Deletion canceled.")
	case catalog.RemoveDeleted:
		fmt.Fprintln(s.out, "Book has been deleted from the library.")
	}
	return nil
}

// PrintSuggestions lists near-miss titles after a failed lookup
func PrintSuggestions(w io.Writer, books []*models.Book) {
	if len(books) == 0 {
		return
	}
	names := make([]string, len(books))
	for i, b := range books {
		names[i] = "'" + b.Title + "'"
	}
	fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(names, ", "))
}

func (s *Shell) search() error {
	kind, err := s.prompt.Ask("Search by (1) title or (2) genre? Enter 1 or 2: ")
	if err != nil {
		return err
	}

	var matches []*models.Book
	switch kind {
	case "1":
		keyword, err := s.prompt.Ask("Enter a book title: ")
		if err != nil {
			return err
		}
		matches = s.finder.ByTitle(keyword)
	case "2":
		genres, err := s.prompt.Ask("Enter genres (comma separated): ")
		if err != nil {
			return err
		}
		matches = s.finder.ByGenres(genres)
	default:
		fmt.Fprintln(s.out, "Invalid input.")
		return nil
	}

	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No matches found.")
		return nil
	}
	fmt.Fprintf(s.out, "\nFound %d matching book(s):\n\n", len(matches))
	for i, b := range matches {
		fmt.Fprintf(s.out, "Result %d:\n%s\n", i+1, b)
		s.pause()
	}
	return nil
}

func (s *Shell) review() error {
	index, ok, err := s.askIndex()
	if err != nil || !ok {
		return err
	}
	if _, err := s.catalog.Get(index); err != nil {
		return err
	}
	text, err := s.prompt.Ask("Review: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(s.out, "Empty review ignored.")
		return nil
	}

	book, err := s.catalog.AddReview(index, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Review added to '%s'.\n", book.Title)
	return nil
}

func (s *Shell) display() {
	books := s.catalog.Books()
	if len(books) == 0 {
		fmt.Fprintln(s.out, "No books in the library.")
		return
	}
	fmt.Fprintln(s.out, "\nBooks in Library:")
	fmt.Fprintln(s.out)
	for i, b := range books {
		fmt.Fprintf(s.out, "Book %d:\n%s\n", i, b)
		s.pause()
	}
}

func (s *Shell) pause() {
	if s.delay > 0 {
		s.sleep(s.delay)
	}
}
