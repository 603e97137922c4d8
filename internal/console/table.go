package console

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// RenderTable lays books out one per row. indexes holds each book's
// position in the catalog; when nil the row number is used.
func RenderTable(books []*models.Book, indexes []int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Chapter", "Genres", "Tags", "Reviews"})

	for i, b := range books {
		idx := i
		if i < len(indexes) {
			idx = indexes[i]
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(idx),
			b.Title,
			strconv.Itoa(b.CurrentChapter()),
			b.GenreList(),
			b.TagList(),
			strconv.Itoa(len(b.Reviews)),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
