package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/strumcli/strum/internal/tui/styles"
)

// SearchBar wraps the query input field.
type SearchBar struct {
	Input textinput.Model
}

// NewSearchBar creates a new SearchBar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search YouTube..."
	ti.CharLimit = 200
	ti.Prompt = "🔍 "
	return &SearchBar{Input: ti}
}

// Render renders the search bar panel
func (s *SearchBar) Render(width int, focused, searching bool) string {
	title := styles.PanelTitle("Search", focused)

	line := s.Input.View()
	if searching {
		line += styles.Dim.Render("  searching...")
	}

	panel := styles.Panel(focused).Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, line))
}
