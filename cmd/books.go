package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/console"
	"github.com/spf13/cobra"
)

func newShellCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu",
		Long: `Opens the interactive menu for adding, editing, removing, searching and
reviewing books. Every change is written to the library file immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, app)
		},
	}
}

func runShell(cmd *cobra.Command, app *appContext) error {
	c, release, err := app.openCatalog()
	if err != nil {
		return err
	}
	defer release()

	shell := console.NewShell(c, cmd.InOrStdin(), cmd.OutOrStdout(), app.cfg.Delay())
	return shell.Run(cmd.Context())
}

func newAddCmd(app *appContext) *cobra.Command {
	var description string
	var chapter int
	var genres string
	var tags string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a book",
		Example: `  # Add a book you just started
  readinglog add "Dune" --description "Desert planet" --genres sci-fi --tags epic

  # Add a book you are halfway through
  readinglog add "Emma" -d "Matchmaking" --chapter 20 --genres "classic, romance"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := app.openCatalog()
			if err != nil {
				return err
			}
			defer release()

			book, err := c.Add(strings.TrimSpace(args[0]), strings.TrimSpace(description), chapter, console.SplitList(genres), console.SplitList(tags))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Book '%s' has been added.\n", book.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Short description")
	cmd.Flags().IntVar(&chapter, "chapter", 1, "Current chapter")
	cmd.Flags().StringVar(&genres, "genres", "", "Comma-separated genres")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", catalog.ErrIndexOutOfRange, raw)
	}
	return index, nil
}

func newEditCmd(app *appContext) *cobra.Command {
	var title string
	var description string
	var chapter int
	var genres string
	var tags string

	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit the book at INDEX",
		Long: `Updates only the fields given as flags. Genres and tags are replaced as a whole.
Book numbers are shown by "readinglog list".`,
		Example: `  # Move to chapter 5
  readinglog edit 0 --chapter 5

  # Replace the tag list
  readinglog edit 2 --tags "re-read, favourite"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			var update catalog.BookUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				update.Title = &title
			}
			if flags.Changed("description") {
				update.Description = &description
			}
			if flags.Changed("chapter") {
				update.CurrentChapter = &chapter
			}
			if flags.Changed("genres") {
				update.Genres = console.SplitList(genres)
			}
			if flags.Changed("tags") {
				update.Tags = console.SplitList(tags)
			}

			c, release, err := app.openCatalog()
			if err != nil {
				return err
			}
			defer release()

			book, err := c.Edit(index, update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Book '%s' has been updated successfully.\n", book.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().IntVar(&chapter, "chapter", 0, "New current chapter")
	cmd.Flags().StringVar(&genres, "genres", "", "Comma-separated genres (replaces all)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags (replaces all)")

	return cmd
}

func newReviewCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:     "review INDEX TEXT...",
		Short:   "Add a review to the book at INDEX",
		Example: `  readinglog review 0 "The ending made up for the slow middle."`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("review text is empty")
			}

			c, release, err := app.openCatalog()
			if err != nil {
				return err
			}
			defer release()

			book, err := c.AddReview(index, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review added to '%s'.\n", book.Title)
			return nil
		},
	}
}

func newRemoveCmd(app *appContext) *cobra.Command {
	var confirmTitle string

	cmd := &cobra.Command{
		Use:   "remove TITLE",
		Short: "Remove a book after retyping its title",
		Long: `Finds the first book whose title matches TITLE ignoring case, then asks you to
retype the stored title exactly (case included) before deleting it.`,
		Example: `  # Prompt for confirmation
  readinglog remove dune

  # Non-interactive
  readinglog remove dune --confirm "Dune"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := app.openCatalog()
			if err != nil {
				return err
			}
			defer release()

			confirm := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm
			if cmd.Flags().Changed("confirm") {
				confirm = func(string) (string, error) { return confirmTitle, nil }
			}

			title := strings.TrimSpace(args[0])
			result, err := catalog.NewRemover(c, confirm).RemoveByTitle(title)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch result {
			case catalog.RemoveNotFound:
				fmt.Fprintf(out, "No book found with the title '%s'.\n", title)
				console.PrintSuggestions(out, catalog.NewFinder(c).Suggest(title, 3))
			case catalog.RemoveCancelled:
				fmt.Fprintln(out, "Title mismatch. Deletion canceled.")
			case catalog.RemoveDeleted:
				fmt.Fprintln(out, "Book has been deleted from the library.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&confirmTitle, "confirm", "", "Exact title, skips the confirmation prompt")

	return cmd
}
