package core

// Track represents one playable item from the catalog. Tracks are plain
// values: they are copied between the results list, the queue and the player,
// never shared.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Channel  string `json:"channel"`
	Views    int64  `json:"views"`
}

// URL returns the playable locator for the track.
func (t Track) URL() string {
	return "https://www.youtube.com/watch?v=" + t.ID
}
