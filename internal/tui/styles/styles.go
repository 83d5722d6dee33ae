package styles

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// flavour is the subset of the catppuccin palette we draw from.
type flavour interface {
	Mauve() catppuccin.Color
	Green() catppuccin.Color
	Yellow() catppuccin.Color
	Red() catppuccin.Color
	Text() catppuccin.Color
	Subtext0() catppuccin.Color
	Overlay0() catppuccin.Color
	Surface1() catppuccin.Color
}

// Colors - set once at startup from the configured theme
var (
	Primary   = lipgloss.Color("#CBA6F7")
	Playing   = lipgloss.Color("#A6E3A1")
	Warning   = lipgloss.Color("#F9E2AF")
	Error     = lipgloss.Color("#F38BA8")
	Text      = lipgloss.Color("#CDD6F4")
	TextMuted = lipgloss.Color("#A6ADC8")
	TextDim   = lipgloss.Color("#6C7086")
	Border    = lipgloss.Color("#45475A")
)

// SetTheme switches the palette to the named catppuccin flavour. Unknown
// names keep the current palette.
func SetTheme(name string) {
	var f flavour
	switch name {
	case "latte":
		f = catppuccin.Latte
	case "frappe":
		f = catppuccin.Frappe
	case "macchiato":
		f = catppuccin.Macchiato
	case "mocha":
		f = catppuccin.Mocha
	default:
		return
	}

	Primary = lipgloss.Color(f.Mauve().Hex)
	Playing = lipgloss.Color(f.Green().Hex)
	Warning = lipgloss.Color(f.Yellow().Hex)
	Error = lipgloss.Color(f.Red().Hex)
	Text = lipgloss.Color(f.Text().Hex)
	TextMuted = lipgloss.Color(f.Subtext0().Hex)
	TextDim = lipgloss.Color(f.Overlay0().Hex)
	Border = lipgloss.Color(f.Surface1().Hex)
	rebuild()
}

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Active    lipgloss.Style
	Paused    lipgloss.Style
	Errored   lipgloss.Style
	Selected  lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Active = lipgloss.NewStyle().Foreground(Playing)
	Paused = lipgloss.NewStyle().Foreground(Warning)
	Errored = lipgloss.NewStyle().Foreground(Error)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(Primary).Reverse(true)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

func init() {
	rebuild()
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(Repeat("━", filled)) +
		emptyStyle.Render(Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Active.Render("▶")
	}
	return Paused.Render("⏸")
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
