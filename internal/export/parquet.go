package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/readinglog/internal/models"
	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes one row per book to w
func WriteParquet(w io.Writer, books []*models.Book) error {
	records := Records(books)

	writer := parquet.NewGenericWriter[BookRecord](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet export", "rows", len(records))
	return nil
}

// ReadParquet reads back every row of a parquet export
func ReadParquet(path string) ([]BookRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[BookRecord](pf)
	defer reader.Close()

	var records []BookRecord
	rows := make([]BookRecord, 64)
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Read parquet export", "path", path, "rows", len(records))
	return records, nil
}
