package console

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  first  \nlast"), &out)

	got, err := p.Ask("Q1: ")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = p.Ask("Q2: ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Ask("Q3: ")
	assert.Error(t, err)
	assert.Equal(t, "Q1: Q2: Q3: ", out.String())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"sci-fi", " epic"}, SplitList(" sci-fi, epic "))
	assert.Equal(t, []string{""}, SplitList("  "))
}

func TestRenderTable(t *testing.T) {
	b, err := models.NewBook("Dune", "Desert planet", 7, models.NewGenres([]string{"sci-fi"}), models.NewTags([]string{"epic"}))
	require.NoError(t, err)
	b.AddReview("good")

	out := RenderTable([]*models.Book{b}, []int{3})
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Sci-fi")
	assert.Contains(t, out, "Epic")
	assert.Contains(t, out, " 3 ")
	assert.Contains(t, out, " 7 ")
}

func newShell(t *testing.T, input *strings.Reader) (*Shell, *catalog.Catalog, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.txt")
	c, err := catalog.Open(path)
	require.NoError(t, err)
	var out bytes.Buffer
	return NewShell(c, input, &out, 0), c, path, &out
}

func TestShellAddEditRemoveScenario(t *testing.T) {
	input := script(
		"1", "Dune", "Desert planet", "3", "sci-fi", "epic",
		"2", "0", "", "", "5", "", "",
		"3", "Dune", "dune",
		"7",
	)
	s, c, path, out := newShell(t, input)

	require.NoError(t, s.Run(context.Background()))

	require.Equal(t, 1, c.Len())
	b, _ := c.Get(0)
	assert.Equal(t, 5, b.CurrentChapter())
	assert.Equal(t, "Desert planet", b.Description)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title: Dune\nDescription: Desert planet\nCurrent Chapter: 5\nGenres: Sci-fi\nTags: Epic\n\n", string(data))

	assert.Contains(t, out.String(), "Book 'Dune' has been added.")
	assert.Contains(t, out.String(), "has been updated successfully")
	assert.Contains(t, out.String(), "Title mismatch. Deletion canceled.")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestShellRecoverableErrors(t *testing.T) {
	input := script(
		"1", "Dune", "Desert planet", "abc", "", "",
		"1", "Dune", "Again", "2", "", "",
		"2", "9",
		"2", "x",
		"6", "0", "   ",
		"6", "0", "Loved it",
		"9",
	)
	s, c, path, out := newShell(t, input)

	// input ends without quitting
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, c.Len())
	b, _ := c.Get(0)
	assert.Equal(t, 1, b.CurrentChapter())
	assert.Equal(t, []string{"Loved it"}, b.Reviews)

	text := out.String()
	assert.Contains(t, text, "Invalid chapter number. Defaulting to 1.")
	assert.Contains(t, text, "already exists")
	assert.Contains(t, text, "no book at index")
	assert.Contains(t, text, "There is no book with that number.")
	assert.Contains(t, text, "Empty review ignored.")
	assert.Contains(t, text, "Invalid choice.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Review: Loved it\n")
}

func TestShellAddRepromptsForBlankFields(t *testing.T) {
	input := script(
		"1", "", "Dune", "  ", "", "Desert planet", "2", "", "",
		"6", "0", "fine",
		"7",
	)
	s, c, path, out := newShell(t, input)
	require.NoError(t, s.Run(context.Background()))

	require.Equal(t, 1, c.Len())
	b, _ := c.Get(0)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Desert planet", b.Description)
	assert.Equal(t, 2, b.CurrentChapter())

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "A title is required."))
	assert.Equal(t, 2, strings.Count(text, "A description is required."))

	reopened, err := catalog.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
}

func TestShellSearchAndDelete(t *testing.T) {
	input := script(
		"1", "Dune", "Desert planet", "1", "Sci-Fi ", "",
		"1", "Emma", "Matchmaking", "1", "romance", "",
		"4", "2", "sci-fi",
		"4", "1", "EMM",
		"4", "1", "zzz",
		"3", "emma", "Emma",
		"3", "Ulysses",
		"3", "Dnue",
		"7",
	)
	s, c, _, out := newShell(t, input)
	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Found 1 matching book(s)"))
	assert.Contains(t, text, "No matches found.")
	assert.Contains(t, text, "Book has been deleted from the library.")
	assert.Contains(t, text, "No book found with the title 'Ulysses'.")
	assert.Contains(t, text, "Did you mean: 'Dune'?")
	assert.Equal(t, 1, c.Len())
}

func TestShellPausesBetweenRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	c := catalog.New(path, nil)
	for _, title := range []string{"A", "B", "C"} {
		_, err := c.Add(title, "desc", 1, nil, nil)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	s := NewShell(c, script("5", "7"), &out, 10*time.Millisecond)
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, s.Run(context.Background()))
	// initial display plus option 5
	assert.Len(t, slept, 6)
}

func TestShellStopsOnSaveFailure(t *testing.T) {
	diskFull := errors.New("disk full")
	c := catalog.New("library.txt", nil).WithSaver(func(string, []*models.Book) error { return diskFull })

	var out bytes.Buffer
	s := NewShell(c, script("1", "Dune", "Desert planet", "1", "", "", "7"), &out, 0)
	err := s.Run(context.Background())
	assert.True(t, errors.Is(err, diskFull))
}

func TestShellCancelledContext(t *testing.T) {
	s, _, _, out := newShell(t, script("5"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "Interrupted.")
}
