package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"frame-go/internal/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		ImageFolder:           "/home/user/Pictures",
		SecondsToShow:         30,
		IncludeSubdirectories: true,
		TimeFilter:            true,
		Filter:                `\.(png|jpg)$`,
		LogDir:                "/home/user/.local/share/frame/log",
		LogLevel:              "debug",
	}

	for _, format := range []Format{FormatTOML, FormatYAML} {
		var buf bytes.Buffer
		m := &Manager{Format: format}

		require.NoError(t, m.Write(&buf, original))
		got, err := m.Read(&buf)
		require.NoError(t, err)
		assert.Equal(t, original, got, "format %d", format)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/frame", "/home/user/Pictures")

	assert.Equal(t, "/home/user/Pictures", cfg.ImageFolder)
	assert.Equal(t, 15, cfg.SecondsToShow)
	assert.True(t, cfg.IncludeSubdirectories)
	assert.False(t, cfg.TimeFilter)
	assert.Equal(t, frame.DefaultImagePattern, cfg.Filter)
	assert.Equal(t, filepath.Join("/data/frame", "log"), cfg.LogDir)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "zero seconds", mutate: func(c *Config) { c.SecondsToShow = 0 }, errMsg: "seconds_to_show"},
		{name: "bad filter", mutate: func(c *Config) { c.Filter = "[" }, errMsg: "invalid regex pattern"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errMsg: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/data", "/pics")
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, "ParseLevel(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"frame.toml": FormatTOML,
		"frame.yaml": FormatYAML,
		"frame.YML":  FormatYAML,
		"frame":      FormatTOML,
		"frame.json": FormatTOML,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatForPath(path), "FormatForPath(%q)", path)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "frame.toml")

		require.NoError(t, Init(path, NewConfig(dir, "/pics")))
		assert.FileExists(t, path)
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "frame.toml")
		cfg := NewConfig(dir, "/pics")

		require.NoError(t, Init(path, cfg))
		assert.Error(t, Init(path, cfg))
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "frame.toml")
		require.NoError(t, Init(path, NewConfig(dir, "/read/test")))

		got, err := ReadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/read/test", got.ImageFolder)
	})

	t.Run("reads yaml by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frame.yaml")
		require.NoError(t, os.WriteFile(path, []byte("image_folder: /yaml/pics\nseconds_to_show: 5\n"), 0644))

		got, err := ReadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/yaml/pics", got.ImageFolder)
		assert.Equal(t, 5, got.SecondsToShow)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/frame.toml")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad(t *testing.T) {
	defaults := NewConfig("/data/frame", "/home/user/Pictures")

	t.Run("missing file writes defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "frame.toml")

		got, err := Load(path, defaults)
		require.NoError(t, err)
		assert.Equal(t, defaults, got)

		onDisk, err := ReadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, defaults, onDisk)
	})

	t.Run("fills missing keys and drops unknown ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frame.toml")
		content := "image_folder = \"/mine\"\ntime_filter = true\ninclude_subdirectories = false\nlegacy_option = 3\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		got, err := Load(path, defaults)
		require.NoError(t, err)
		assert.Equal(t, "/mine", got.ImageFolder)
		assert.True(t, got.TimeFilter)
		assert.False(t, got.IncludeSubdirectories, "explicit false is kept")
		assert.Equal(t, defaults.SecondsToShow, got.SecondsToShow)
		assert.Equal(t, defaults.Filter, got.Filter)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "legacy_option")
		assert.Contains(t, string(data), "seconds_to_show")
	})

	t.Run("complete file is left untouched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "frame.toml")
		custom := *defaults
		custom.SecondsToShow = 60
		require.NoError(t, Init(path, &custom))
		before, err := os.Stat(path)
		require.NoError(t, err)

		got, err := Load(path, defaults)
		require.NoError(t, err)
		assert.Equal(t, custom, *got)

		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, os.SameFile(before, after), "config file was rewritten")
	})

	t.Run("undecodable file is replaced by defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frame.yaml")
		require.NoError(t, os.WriteFile(path, []byte("seconds_to_show: [not, a, number]\n"), 0644))

		got, err := Load(path, defaults)
		require.NoError(t, err)
		assert.Equal(t, defaults, got)
	})
}
