package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/readinglog/internal/catalog"
	"github.com/lehigh-university-libraries/readinglog/internal/config"
	"github.com/lehigh-university-libraries/readinglog/internal/console"
	"github.com/lehigh-university-libraries/readinglog/internal/storage"
	"github.com/spf13/cobra"
)

// appContext carries flag values and the loaded config between commands
type appContext struct {
	configFlag string
	fileFlag   string
	verbose    bool

	cfg *config.Config
}

func (a *appContext) load(cmd *cobra.Command) error {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	cfg, path, exists, err := config.Load(a.configFlag)
	if err != nil {
		return err
	}
	if a.fileFlag != "" {
		if cfg.Library.File, err = config.ExpandPath(a.fileFlag); err != nil {
			return err
		}
	}
	a.cfg = cfg

	level := cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Debug("Configuration loaded", "config", path, "config_exists", exists, "library", cfg.Library.File)
	return nil
}

// openCatalog locks the library file and loads it. The returned func
// releases the lock.
func (a *appContext) openCatalog() (*catalog.Catalog, func(), error) {
	path := a.cfg.Library.File
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create library directory: %w", err)
	}
	lock, err := storage.Lock(path)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Failed to release library lock", "path", path, "err", err)
		}
	}

	c, err := catalog.Open(path)
	if err != nil {
		release()
		return nil, nil, err
	}
	return c, release, nil
}

func NewRootCmd() *cobra.Command {
	app := &appContext{}

	cmd := &cobra.Command{
		Use:   "readinglog",
		Short: "Track the books you are reading in a plain text file",
		Long: `readinglog keeps a personal catalog of books: title, description, the chapter
you are on, genres, tags and your reviews.

The catalog lives in a plain text file that is rewritten after every change.
Run without a subcommand in a terminal to open the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := cmd.InOrStdin().(*os.File); ok && console.IsInteractive(f) {
				return runShell(cmd, app)
			}
			return cmd.Help()
		},
	}

	defaultConfig, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfig = ""
	}
	cmd.PersistentFlags().StringVarP(&app.fileFlag, "file", "f", "", "Library file (overrides config and READINGLOG_FILE)")
	cmd.PersistentFlags().StringVar(&app.configFlag, "config", "", fmt.Sprintf("Configuration file (default %s)", defaultConfig))
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newShellCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newReviewCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}
