package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/tui/styles"
)

// Queue displays the pending-track queue.
type Queue struct {
	offset   int
	selected int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// Selected returns the selected index
func (q *Queue) Selected() int {
	return q.selected
}

// SelectNext moves the selection down.
func (q *Queue) SelectNext(queueLen int) {
	if q.selected < queueLen-1 {
		q.selected++
	}
}

// SelectPrev moves the selection up.
func (q *Queue) SelectPrev() {
	if q.selected > 0 {
		q.selected--
	}
}

// ClampSelection keeps the selection inside the queue after removals.
func (q *Queue) ClampSelection(queueLen int) {
	if q.selected >= queueLen {
		q.selected = queueLen - 1
	}
	if q.selected < 0 {
		q.selected = 0
	}
}

// Render renders the queue panel
func (q *Queue) Render(tracks []core.Track, width, height int, focused bool) string {
	title := styles.PanelTitle(fmt.Sprintf("Queue (%d)", len(tracks)), focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderQueue(tracks, width-4, height-4)
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

func (q *Queue) renderQueue(tracks []core.Track, width, maxLines int) string {
	q.ClampSelection(len(tracks))

	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the selection visible.
	if q.selected < q.offset {
		q.offset = q.selected
	}
	if q.selected >= q.offset+visibleCount {
		q.offset = q.selected - visibleCount + 1
	}
	if q.offset >= len(tracks) {
		q.offset = 0
	}

	start := q.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)

		titleSpace := width - len(num) - len(track.Duration) - 5
		if titleSpace < 10 {
			titleSpace = 10
		}
		line := fmt.Sprintf("%s %s  [%s]", num, truncate(track.Title, titleSpace), track.Duration)

		if focusedLine := i == q.selected; focusedLine {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Dim.Render(num)+line[len(num):])
		}
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
