package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			ResultsPerPage: 10,
			IncludeShorts:  false,
		},
		Player: PlayerConfig{
			Binary:   "mpv",
			Volume:   100,
			SeekStep: 10,
		},
		TUI: TUIConfig{
			Theme:  "mocha",
			TickMs: 250,
		},
		Download: DownloadConfig{
			Dir: "~/Music/strum",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Search
	if c.Search.ResultsPerPage == 0 {
		c.Search.ResultsPerPage = d.Search.ResultsPerPage
	}

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}
	if c.Player.Volume == 0 {
		c.Player.Volume = d.Player.Volume
	}
	if c.Player.SeekStep == 0 {
		c.Player.SeekStep = d.Player.SeekStep
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.TickMs == 0 {
		c.TUI.TickMs = d.TUI.TickMs
	}

	// Download
	if c.Download.Dir == "" {
		c.Download.Dir = d.Download.Dir
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
