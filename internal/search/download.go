package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strumcli/strum/internal/core"
)

// Downloader saves tracks to disk through yt-dlp, extracting the audio
// stream.
type Downloader struct {
	dir string
	run Runner
}

// NewDownloader creates a downloader writing into dir. A leading ~ expands
// to the user's home directory.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		dir: expandHome(dir),
		run: execRunner,
	}
}

// SetRunner overrides the command runner.
func (d *Downloader) SetRunner(run Runner) {
	d.run = run
}

// Dir returns the destination directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Download fetches the track's best audio into the destination directory,
// creating it if needed. Files are named after the track title.
func (d *Downloader) Download(t core.Track) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	args := []string{
		"--no-warnings",
		"-f", "bestaudio",
		"-x",
		"--audio-quality", "0",
		"-o", filepath.Join(d.dir, "%(title)s.%(ext)s"),
		t.URL(),
	}
	if _, err := d.run(args...); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	return nil
}

func expandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}
