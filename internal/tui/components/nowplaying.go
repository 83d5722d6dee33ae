package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/tui/styles"
)

// NowPlaying displays the current playback status.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(active bool, status core.PlaybackStatus, width int) string {
	title := styles.PanelTitle("Now Playing", false)

	var content string
	if !active {
		content = styles.Muted.Render("Nothing playing")
	} else {
		content = n.renderStatus(status, width-4)
	}

	panel := styles.Panel(false).Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		content,
	))
}

func (n *NowPlaying) renderStatus(status core.PlaybackStatus, width int) string {
	icon := styles.StatusIcon(status.Playing && !status.Paused)
	trackTitle := styles.Title.Render(truncate(status.Title, width-4))

	progressWidth := width - 16
	if progressWidth < 10 {
		progressWidth = 10
	}
	bar := styles.ProgressBar(status.ProgressPercent(), progressWidth)
	progress := fmt.Sprintf("%s %s %s",
		formatDuration(status.Position),
		bar,
		formatDuration(status.Duration),
	)

	volume := styles.Muted.Render(fmt.Sprintf("🔊 %d%%", status.Volume))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+trackTitle,
		progress,
		volume,
	)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
