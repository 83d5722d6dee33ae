package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	// Player process lifecycle.
	ErrSpawn            = errors.New("player process could not start")
	ErrConnectTimeout   = errors.New("player socket never became available")
	ErrConnectionFailed = errors.New("player socket connection failed")
	ErrLoad             = errors.New("load command failed")

	// Control-socket protocol. Absorbed inside status refreshes, surfaced
	// from direct property reads.
	ErrPropertyUnavailable = errors.New("property unavailable")
	ErrTimeout             = errors.New("ipc read timeout")
	ErrProtocol            = errors.New("malformed ipc response")

	// Queue contract violations.
	ErrIndexOutOfRange = errors.New("queue index out of range")
	ErrQueueEmpty      = errors.New("queue is empty")

	// Environment.
	ErrPlayerNotFound     = errors.New("no supported media player found")
	ErrUnsupportedPlayer  = errors.New("player has no control socket")
	ErrSearchToolNotFound = errors.New("yt-dlp not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// StrumError wraps an error with a user-friendly suggestion.
type StrumError struct {
	Err        error
	Suggestion string
}

func (e *StrumError) Error() string {
	return e.Err.Error()
}

func (e *StrumError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &StrumError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var strumErr *StrumError
	if errors.As(err, &strumErr) && strumErr.Suggestion != "" {
		return strumErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrSearchToolNotFound) || strings.Contains(errStr, "yt-dlp") {
		return "Install yt-dlp with: pip install yt-dlp"
	}

	if errors.Is(err, ErrPlayerNotFound) {
		return "Install mpv to enable background playback (e.g. apt install mpv)"
	}

	if errors.Is(err, ErrSpawn) {
		return "Check that the configured player binary exists and is executable"
	}

	if errors.Is(err, ErrConnectTimeout) || errors.Is(err, ErrConnectionFailed) {
		return "The player did not come up; try again, or check that mpv supports --input-ipc-server"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'strum config init' to create a fresh configuration"
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
