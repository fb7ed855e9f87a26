package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// GlobalConfig holds cross-store user preferences, kept in ~/.cbx/config.json.
type GlobalConfig struct {
	// StoreDir optionally overrides the default store directory.
	StoreDir string `json:"storeDir,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id (e.g. "default").
	Profile string `json:"profile,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cbx", "config.json"), nil
}

// LoadConfig reads the global config. Missing or corrupted files yield the
// zero config.
func LoadConfig() (GlobalConfig, error) {
	p, err := configPath()
	if err != nil {
		return GlobalConfig{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return GlobalConfig{}, nil
		}
		return GlobalConfig{}, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return GlobalConfig{}, nil
	}
	return cfg, nil
}

// SaveConfig writes the global config atomically.
func SaveConfig(cfg GlobalConfig) error {
	p, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(p, b)
}
