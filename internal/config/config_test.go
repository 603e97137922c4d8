package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvLibraryFile, EnvExportDir, EnvLogLevel, EnvDelayMS} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "library.txt", filepath.Base(cfg.Library.File))
	assert.True(t, filepath.IsAbs(cfg.Library.File))
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Zero(t, cfg.Delay())
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[library]
file = "` + filepath.Join(dir, "books.txt") + `"

[display]
delay_ms = 250

[logging]
level = "DEBUG"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(dir, "books.txt"), cfg.Library.File)
	assert.Equal(t, 250, cfg.Display.DelayMS)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	t.Setenv(EnvLibraryFile, filepath.Join(dir, "other.txt"))
	t.Setenv(EnvDelayMS, "0")
	cfg, _, _, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.txt"), cfg.Library.File)
	assert.Equal(t, 0, cfg.Display.DelayMS)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "negative delay", content: "[display]\ndelay_ms = -1\n"},
		{name: "unknown level", content: "[logging]\nlevel = \"loud\"\n"},
		{name: "malformed toml", content: "[library\nfile = 1"},
		{name: "bad env delay", content: "", env: map[string]string{EnvDelayMS: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, _, _, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, CreateSample(path))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "library.txt", filepath.Base(cfg.Library.File))

	out, err := cfg.Encode()
	require.NoError(t, err)
	assert.Contains(t, out, "[library]")
}
