package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *appContext) *cobra.Command {
	var format string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the library as YAML or Parquet",
		Long: `Writes a timestamped snapshot of the library into the export directory.
Snapshots are for reading elsewhere; the library itself stays in its text file.`,
		Example: `  readinglog export --format yaml
  readinglog export --format parquet --output ./exports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Open(app.cfg.Library.File)
			if err != nil {
				return err
			}

			dir := app.cfg.Library.ExportDir
			if outputDir != "" {
				dir = outputDir
			}

			path, err := export.ToFile(dir, format, c.Path(), c.Books(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d book(s) to %s\n", c.Len(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", fmt.Sprintf("Export format (%s)", strings.Join(export.Formats, ", ")))
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to library.export_dir)")

	return cmd
}
