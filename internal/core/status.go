package core

import "time"

// PlaybackStatus is a point-in-time snapshot of the external player's
// reported state. It is derived, not authoritative: the player manager
// replaces it wholesale after a successful status poll and leaves it
// untouched after a failed one.
type PlaybackStatus struct {
	Playing  bool          `json:"playing"`
	Paused   bool          `json:"paused"`
	Position time.Duration `json:"position"`
	Duration time.Duration `json:"duration"`
	Volume   int           `json:"volume"`
	Title    string        `json:"title"`
	Finished bool          `json:"finished"`
}

// DefaultStatus returns the snapshot used before anything has played.
func DefaultStatus() PlaybackStatus {
	return PlaybackStatus{Volume: 100}
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s PlaybackStatus) ProgressPercent() float64 {
	if s.Duration == 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Duration) * 100
	if p > 100 {
		p = 100
	}
	return p
}
