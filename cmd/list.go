package cmd

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/console"
	"github.com/lehigh-university-libraries/readinglog/internal/export"
	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"github.com/spf13/cobra"
)

func newListCmd(app *appContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every book in the library",
		Example: `  readinglog list
  readinglog list --format text
  readinglog list --format csv > books.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Open(app.cfg.Library.File)
			if err != nil {
				return err
			}
			books := c.Books()
			indexes := make([]int, len(books))
			for i := range indexes {
				indexes[i] = i
			}
			return printBooks(cmd.OutOrStdout(), format, books, indexes)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, text, json, csv)")

	return cmd
}

func newSearchCmd(app *appContext) *cobra.Command {
	var title string
	var genres string
	var format string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search by title or genre",
		Long: `Title search matches any book whose title contains the keyword, ignoring case.
Genre search takes a comma-separated list and matches books having any of them.`,
		Example: `  readinglog search --title dune
  readinglog search --genre "sci-fi, fantasy"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byTitle := cmd.Flags().Changed("title")
			byGenre := cmd.Flags().Changed("genre")
			if byTitle == byGenre {
				return errors.New("exactly one of --title or --genre is required")
			}

			c, err := catalog.Open(app.cfg.Library.File)
			if err != nil {
				return err
			}
			finder := catalog.NewFinder(c)

			var matches []*models.Book
			if byTitle {
				matches = finder.ByTitle(title)
			} else {
				matches = finder.ByGenres(genres)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 && format != "json" && format != "csv" {
				fmt.Fprintln(out, "No matches found.")
				return nil
			}
			return printBooks(out, format, matches, positions(c.Books(), matches))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title keyword")
	cmd.Flags().StringVar(&genres, "genre", "", "Comma-separated genres")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, text, json, csv)")

	return cmd
}

// positions maps each match back to its catalog index
func positions(all, matches []*models.Book) []int {
	index := make(map[*models.Book]int, len(all))
	for i, b := range all {
		index[b] = i
	}
	out := make([]int, len(matches))
	for i, b := range matches {
		out[i] = index[b]
	}
	return out
}

func printBooks(w io.Writer, format string, books []*models.Book, indexes []int) error {
	switch strings.ToLower(format) {
	case "table":
		if len(books) == 0 {
			fmt.Fprintln(w, "No books in the library.")
			return nil
		}
		fmt.Fprintln(w, console.RenderTable(books, indexes))
		return nil
	case "text":
		return printTextBooks(w, books, indexes)
	case "json":
		return printJSONBooks(w, books, indexes)
	case "csv":
		return printCSVBooks(w, books, indexes)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextBooks(w io.Writer, books []*models.Book, indexes []int) error {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in the library.")
		return nil
	}
	for i, b := range books {
		fmt.Fprintf(w, "Book %d:\n%s\n", indexes[i], b)
	}
	return nil
}

func printJSONBooks(w io.Writer, books []*models.Book, indexes []int) error {
	records := export.Records(books)
	for i := range records {
		records[i].Index = indexes[i]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func printCSVBooks(w io.Writer, books []*models.Book, indexes []int) error {
	writer := csv.NewWriter(w)
	header := []string{"index", "title", "description", "current_chapter", "genres", "tags", "reviews"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, b := range books {
		row := []string{
			strconv.Itoa(indexes[i]),
			b.Title,
			b.Description,
			strconv.Itoa(b.CurrentChapter()),
			strings.Join(b.GenreNames(), ";"),
			strings.Join(b.TagNames(), ";"),
			strings.Join(b.Reviews, " | "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
