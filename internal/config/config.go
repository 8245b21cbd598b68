package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"frame-go/internal/frame"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration for frame.
// Filter is a regular expression tested against file names.
// LogLevel is one of debug, info, warn or error.
type Config struct {
	ImageFolder           string `toml:"image_folder" yaml:"image_folder"`
	SecondsToShow         int    `toml:"seconds_to_show" yaml:"seconds_to_show"`
	IncludeSubdirectories bool   `toml:"include_subdirectories" yaml:"include_subdirectories"`
	TimeFilter            bool   `toml:"time_filter" yaml:"time_filter"`
	Filter                string `toml:"filter" yaml:"filter"`
	LogDir                string `toml:"log_dir" yaml:"log_dir"`
	LogLevel              string `toml:"log_level" yaml:"log_level"`
}

// field ties a config key to the code that copies its value between configs.
type field struct {
	key  string
	copy func(dst, src *Config)
}

var fields = []field{
	{"image_folder", func(d, s *Config) { d.ImageFolder = s.ImageFolder }},
	{"seconds_to_show", func(d, s *Config) { d.SecondsToShow = s.SecondsToShow }},
	{"include_subdirectories", func(d, s *Config) { d.IncludeSubdirectories = s.IncludeSubdirectories }},
	{"time_filter", func(d, s *Config) { d.TimeFilter = s.TimeFilter }},
	{"filter", func(d, s *Config) { d.Filter = s.Filter }},
	{"log_dir", func(d, s *Config) { d.LogDir = s.LogDir }},
	{"log_level", func(d, s *Config) { d.LogLevel = s.LogLevel }},
}

// NewConfig creates a Config with default values.
// baseDir holds frame's own data; imageFolder is the folder to show.
func NewConfig(baseDir, imageFolder string) *Config {
	return &Config{
		ImageFolder:           imageFolder,
		SecondsToShow:         15,
		IncludeSubdirectories: true,
		TimeFilter:            false,
		Filter:                frame.DefaultImagePattern,
		LogDir:                filepath.Join(baseDir, "log"),
		LogLevel:              "info",
	}
}

// Validate checks values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	if c.SecondsToShow <= 0 {
		return fmt.Errorf("seconds_to_show must be positive, got %d", c.SecondsToShow)
	}
	if _, err := frame.CompilePattern(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a log_level value to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// Format selects the on-disk encoding of a config file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatForPath picks the format from the file extension. Anything other
// than .yaml or .yml is TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Manager handles reading and writing configuration.
type Manager struct {
	Format Format
}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg, _, err := m.decode(r)
	return cfg, err
}

// decode returns the Config along with the top-level keys present in the document.
func (m *Manager) decode(r io.Reader) (*Config, []string, error) {
	var cfg Config
	var keys []string

	switch m.Format {
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to decode config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to decode config: %w", err)
		}
		for k := range raw {
			keys = append(keys, k)
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode config: %w", err)
		}
		for _, k := range md.Keys() {
			if len(k) == 1 {
				keys = append(keys, k[0])
			}
		}
	}
	return &cfg, keys, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	var err error
	switch m.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		err = enc.Encode(cfg)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = toml.NewEncoder(w).Encode(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{Format: FormatForPath(path)}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path, reconciling it with defaults:
// keys missing from the file take their default value and unknown keys
// are dropped. The file is rewritten when either happens. A missing or
// undecodable file is replaced by the defaults.
func Load(path string, defaults *Config) (*Config, error) {
	m := &Manager{Format: FormatForPath(path)}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		return saveDefaults(path, defaults)
	}
	cfg, keys, err := m.decode(f)
	f.Close()
	if err != nil {
		return saveDefaults(path, defaults)
	}

	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	changed := false
	for _, fd := range fields {
		if !present[fd.key] {
			fd.copy(cfg, defaults)
			changed = true
		}
		delete(present, fd.key)
	}
	// Whatever is left is unknown; rewriting from the struct drops it.
	if len(present) > 0 {
		changed = true
	}

	if changed {
		if err := writeToFile(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func saveDefaults(path string, defaults *Config) (*Config, error) {
	cfg := *defaults
	if err := writeToFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// writeToFile atomically replaces the file at path with cfg, holding an
// exclusive lock on path+".lock" while it writes.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer lock.Unlock()

	var buf bytes.Buffer
	m := &Manager{Format: FormatForPath(path)}
	if err := m.Write(&buf, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".frame-config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
