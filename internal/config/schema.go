package config

// Config is the root configuration structure.
type Config struct {
	Search   SearchConfig   `toml:"search"`
	Player   PlayerConfig   `toml:"player"`
	TUI      TUIConfig      `toml:"tui"`
	Download DownloadConfig `toml:"download"`
	Log      LogConfig      `toml:"log"`
}

// SearchConfig holds YouTube search settings.
type SearchConfig struct {
	ResultsPerPage int  `toml:"results_per_page"`
	IncludeShorts  bool `toml:"include_shorts"`
}

// PlayerConfig holds playback settings.
type PlayerConfig struct {
	Binary   string `toml:"binary"`
	Volume   int    `toml:"volume"`
	SeekStep int    `toml:"seek_step"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme  string `toml:"theme"`
	TickMs int    `toml:"tick_ms"`
}

// DownloadConfig holds settings for saving tracks locally.
type DownloadConfig struct {
	Dir string `toml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
