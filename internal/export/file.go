package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// ToFile writes books in format into dir and returns the file path.
// The file name carries a timestamp so earlier exports are kept.
func ToFile(dir, format, source string, books []*models.Book, now time.Time) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	var ext string
	switch format {
	case "yaml", "yml":
		format, ext = "yaml", ".yaml"
	case "parquet":
		ext = ".parquet"
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, "library-"+now.Format("2006-01-02_15-04-05")+ext)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	switch format {
	case "yaml":
		err = WriteYAML(file, source, books, now)
	case "parquet":
		err = WriteParquet(file, books)
	}
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
