// Package deps verifies the external tools strum depends on.
package deps

import (
	"fmt"
	"os/exec"

	"github.com/strumcli/strum/internal/errors"
)

// SupportsBackground reports whether a player binary can be driven over a
// control socket. Only mpv exposes one; anything else would have to run in
// the blocking foreground mode.
func SupportsBackground(binary string) bool {
	return binary == "mpv"
}

// CheckSearchTool verifies yt-dlp is on PATH.
func CheckSearchTool() error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return errors.WithSuggestion(errors.ErrSearchToolNotFound,
			"Install yt-dlp with: pip install yt-dlp")
	}
	return nil
}

// CheckPlayer verifies the configured player binary is on PATH. An empty
// binary falls back to detection.
func CheckPlayer(binary string) (string, error) {
	if binary != "" {
		if _, err := exec.LookPath(binary); err != nil {
			return "", errors.WithSuggestion(
				fmt.Errorf("%w: %s", errors.ErrPlayerNotFound, binary),
				"Install it, or change player.binary in the configuration")
		}
		return binary, nil
	}
	return Detect()
}

// Detect finds the first supported player on PATH, preferring the ones
// that support background playback.
func Detect() (string, error) {
	for _, candidate := range []string{"mpv", "vlc", "mplayer"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.WithSuggestion(errors.ErrPlayerNotFound,
		"Install one of: mpv, vlc, mplayer (mpv recommended)")
}
