package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/tui/styles"
)

// Results displays one page of search results.
type Results struct {
	selected int
}

// NewResults creates a new Results component
func NewResults() *Results {
	return &Results{}
}

// Selected returns the selected index within the page.
func (r *Results) Selected() int {
	return r.selected
}

// SelectNext moves the selection down within the page.
func (r *Results) SelectNext(pageLen int) {
	if r.selected < pageLen-1 {
		r.selected++
	}
}

// SelectPrev moves the selection up.
func (r *Results) SelectPrev() {
	if r.selected > 0 {
		r.selected--
	}
}

// Select jumps to an index within the page, clamping to valid entries.
func (r *Results) Select(i, pageLen int) {
	if pageLen == 0 {
		r.selected = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= pageLen {
		i = pageLen - 1
	}
	r.selected = i
}

// ResetSelection moves the selection back to the top of the page.
func (r *Results) ResetSelection() {
	r.selected = 0
}

// Render renders the results panel
func (r *Results) Render(tracks []core.Track, page int, exhausted bool, width, height int, focused bool) string {
	header := fmt.Sprintf("Results · page %d", page+1)
	if exhausted {
		header += " (end)"
	}
	title := styles.PanelTitle(header, focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("No results. Type a query and press Enter.")
	} else {
		content = r.renderTracks(tracks, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (r *Results) renderTracks(tracks []core.Track, width int) string {
	if r.selected >= len(tracks) {
		r.selected = len(tracks) - 1
	}

	lines := make([]string, 0, len(tracks))
	for i, track := range tracks {
		num := fmt.Sprintf("%2d.", i+1)
		meta := fmt.Sprintf("[%s] %s · %s views",
			track.Duration,
			truncate(track.Channel, 20),
			humanize.SIWithDigits(float64(track.Views), 1, ""),
		)

		titleSpace := width - len(num) - len(meta) - 4
		if titleSpace < 10 {
			titleSpace = 10
		}
		line := fmt.Sprintf("%s %s  %s", num, truncate(track.Title, titleSpace), meta)

		if i == r.selected {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Dim.Render(num)+line[len(num):])
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
