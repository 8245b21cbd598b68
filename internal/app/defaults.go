package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - FRAME_CONFIG_PATH: config file location (default: ~/.config/frame.toml)
//   - FRAME_HOME: base directory for frame data (default: ~/.local/share/frame)
//   - XDG_PICTURES_DIR: folder shown by default (default: ~/Pictures)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	pictureDir, err := getPictureDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"picture_dir": pictureDir,
	}, nil
}

// getConfigPath returns the config file path, checking FRAME_CONFIG_PATH env var first,
// then falling back to the default ~/.config/frame.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("FRAME_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "frame.toml"), nil
}

// getBaseDir returns the base directory for frame data, checking FRAME_HOME env var first,
// then falling back to the XDG default ~/.local/share/frame.
func getBaseDir() (string, error) {
	if path := os.Getenv("FRAME_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "frame"), nil
}

func getPictureDir() (string, error) {
	if path := os.Getenv("XDG_PICTURES_DIR"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, "Pictures"), nil
}
