package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsApplied(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Search.ResultsPerPage != 10 {
		t.Errorf("expected 10 results per page, got %d", cfg.Search.ResultsPerPage)
	}
	if cfg.Player.Binary != "mpv" {
		t.Errorf("expected mpv binary, got %q", cfg.Player.Binary)
	}
	if cfg.Player.Volume != 100 {
		t.Errorf("expected volume 100, got %d", cfg.Player.Volume)
	}
	if cfg.TUI.TickMs != 250 {
		t.Errorf("expected tick_ms 250, got %d", cfg.TUI.TickMs)
	}
}

func TestDefaultsPreserveExisting(t *testing.T) {
	cfg := &Config{
		Player: PlayerConfig{Volume: 40, SeekStep: 5},
	}
	cfg.ApplyDefaults()

	if cfg.Player.Volume != 40 {
		t.Errorf("expected volume 40 preserved, got %d", cfg.Player.Volume)
	}
	if cfg.Player.SeekStep != 5 {
		t.Errorf("expected seek_step 5 preserved, got %d", cfg.Player.SeekStep)
	}
	if cfg.Player.Binary != "mpv" {
		t.Errorf("expected default binary filled in, got %q", cfg.Player.Binary)
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[search]
results_per_page = 25
include_shorts = true

[player]
binary = "vlc"
volume = 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.ResultsPerPage != 25 {
		t.Errorf("expected 25 results per page, got %d", cfg.Search.ResultsPerPage)
	}
	if !cfg.Search.IncludeShorts {
		t.Error("expected include_shorts true")
	}
	if cfg.Player.Binary != "vlc" {
		t.Errorf("expected vlc, got %q", cfg.Player.Binary)
	}
	// Unset sections still fall back to defaults.
	if cfg.TUI.Theme != "mocha" {
		t.Errorf("expected default theme, got %q", cfg.TUI.Theme)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom("/nonexistent/config.toml")
	if err == nil {
		t.Error("expected an error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STRUM_PLAYER_VOLUME", "65")
	t.Setenv("STRUM_TUI_THEME", "latte")
	t.Setenv("STRUM_SEARCH_INCLUDE_SHORTS", "true")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Player.Volume != 65 {
		t.Errorf("expected volume 65, got %d", cfg.Player.Volume)
	}
	if cfg.TUI.Theme != "latte" {
		t.Errorf("expected latte theme, got %q", cfg.TUI.Theme)
	}
	if !cfg.Search.IncludeShorts {
		t.Error("expected include_shorts override")
	}
}

func TestEnvOverrideIgnoresBadNumbers(t *testing.T) {
	t.Setenv("STRUM_PLAYER_VOLUME", "loud")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Player.Volume != 100 {
		t.Errorf("expected default volume kept, got %d", cfg.Player.Volume)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Player.Volume = 42
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadFrom(DefaultPath())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Player.Volume != 42 {
		t.Errorf("expected volume 42 after round trip, got %d", loaded.Player.Volume)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"volume too high", func(c *Config) { c.Player.Volume = 150 }, "volume"},
		{"zero results", func(c *Config) { c.Search.ResultsPerPage = 0 }, "results_per_page"},
		{"bad theme", func(c *Config) { c.TUI.Theme = "solarized" }, "theme"},
		{"tick too small", func(c *Config) { c.TUI.TickMs = 10 }, "tick_ms"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
