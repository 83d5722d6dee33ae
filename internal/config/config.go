package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.strumrc, $XDG_CONFIG_HOME/strum/config.toml, ~/.config/strum/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the configuration to the default XDG location, creating the
// directory if needed.
func (c *Config) Save() error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// DefaultPath returns the path Save writes to.
func DefaultPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "strum", "config.toml")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".strumrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "strum", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Search
	if v := os.Getenv("STRUM_SEARCH_RESULTS_PER_PAGE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Search.ResultsPerPage = i
		}
	}
	if v := os.Getenv("STRUM_SEARCH_INCLUDE_SHORTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Search.IncludeShorts = b
		}
	}

	// Player
	if v := os.Getenv("STRUM_PLAYER_BINARY"); v != "" {
		cfg.Player.Binary = v
	}
	if v := os.Getenv("STRUM_PLAYER_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.Volume = i
		}
	}

	// TUI
	if v := os.Getenv("STRUM_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("STRUM_TUI_TICK_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.TickMs = i
		}
	}

	// Download
	if v := os.Getenv("STRUM_DOWNLOAD_DIR"); v != "" {
		cfg.Download.Dir = v
	}

	// Log
	if v := os.Getenv("STRUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STRUM_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
