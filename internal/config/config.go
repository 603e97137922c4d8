package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Environment overrides, applied after the config file
const (
	EnvLibraryFile = "READINGLOG_FILE"
	EnvExportDir   = "READINGLOG_EXPORT_DIR"
	EnvLogLevel    = "READINGLOG_LOG_LEVEL"
	EnvDelayMS     = "READINGLOG_DELAY_MS"
)

const (
	defaultLibraryFile = "library.txt"
	defaultExportDir   = "."
	defaultLogLevel    = "info"
)

// Library locates the catalog file and its exports.
type Library struct {
	File      string `toml:"file"`
	ExportDir string `toml:"export_dir"`
}

// Display controls console output pacing.
type Display struct {
	DelayMS int `toml:"delay_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for readinglog.
type Config struct {
	Library Library `toml:"library"`
	Display Display `toml:"display"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Library: Library{
			File:      defaultLibraryFile,
			ExportDir: defaultExportDir,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "readinglog", "config.toml"), nil
	}
	return expandPath("~/.config/readinglog/config.toml")
}

// Load reads the config file at path (or the default location when empty),
// applies environment overrides and validates the result. A missing file
// is not an error; the bool reports whether one was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvLibraryFile)); v != "" {
		c.Library.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		c.Library.ExportDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDelayMS)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDelayMS, err)
		}
		c.Display.DelayMS = n
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Library.File, err = expandPath(strings.TrimSpace(c.Library.File)); err != nil {
		return fmt.Errorf("library.file: %w", err)
	}
	if c.Library.ExportDir, err = expandPath(strings.TrimSpace(c.Library.ExportDir)); err != nil {
		return fmt.Errorf("library.export_dir: %w", err)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Library.File == "" {
		return errors.New("library.file must be set")
	}
	if c.Display.DelayMS < 0 {
		return fmt.Errorf("display.delay_ms must be >= 0, got %d", c.Display.DelayMS)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Delay is the pause between records in the interactive shell.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Display.DelayMS) * time.Millisecond
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.Logging.Level)
	return level
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", name)
	}
}

// Encode renders the config as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
