package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks(t *testing.T) []*models.Book {
	t.Helper()
	dune, err := models.NewBook("Dune", "Desert planet", 3, models.NewGenres([]string{"Sci-Fi", "classic"}), models.NewTags([]string{"epic"}))
	require.NoError(t, err)
	dune.AddReview("Spice must flow")
	emma, err := models.NewBook("Emma", "Matchmaking", 1, nil, nil)
	require.NoError(t, err)
	return []*models.Book{dune, emma}
}

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, "/tmp/library.txt", sampleBooks(t), fixedTime))

	out := buf.String()
	assert.Contains(t, out, "2025-03-14T09:26:53Z")
	assert.Contains(t, out, "count: 2")
	assert.Contains(t, out, "title: Dune")
	assert.Contains(t, out, "current_chapter: 3")

	snapshot, err := ReadYAML(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, snapshot.Books, 2)
	assert.Equal(t, []string{"sci-fi", "classic"}, snapshot.Books[0].Genres)
	assert.Equal(t, []string{"Spice must flow"}, snapshot.Books[0].Reviews)
	assert.Equal(t, 3, snapshot.Books[0].CurrentChapter)
	assert.Equal(t, 1, snapshot.Books[1].Index)
	assert.Empty(t, snapshot.Books[1].Reviews)
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.parquet")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteParquet(file, sampleBooks(t)))
	require.NoError(t, file.Close())

	records, err := ReadParquet(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dune", records[0].Title)
	assert.Equal(t, 3, records[0].CurrentChapter)
	assert.Equal(t, []string{"sci-fi", "classic"}, records[0].Genres)
	assert.Equal(t, []string{"epic"}, records[0].Tags)
	assert.Equal(t, "Emma", records[1].Title)
	assert.Empty(t, records[1].Genres)
}

func TestToFile(t *testing.T) {
	tests := []struct {
		format  string
		ext     string
		wantErr bool
	}{
		{format: "yaml", ext: ".yaml"},
		{format: "YML", ext: ".yaml"},
		{format: "parquet", ext: ".parquet"},
		{format: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "exports")
			path, err := ToFile(dir, tt.format, "library.txt", sampleBooks(t), fixedTime)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "library-2025-03-14_09-26-53"+tt.ext), path)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}
