package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/strumcli/strum/internal/config"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/mpv"
	"github.com/strumcli/strum/internal/playback"
	"github.com/strumcli/strum/internal/search"
	"github.com/strumcli/strum/internal/tui/components"
	"github.com/strumcli/strum/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelSearch Panel = iota
	PanelResults
	PanelQueue

	panelCount = 3
)

// App holds the TUI application state
type App struct {
	cfg     *config.Config
	session *playback.Session
}

// NewApp creates a new TUI application
func NewApp(cfg *config.Config, playerBinary string) *App {
	session := playback.NewSession(func() playback.Controller {
		return mpv.NewManager(mpv.Options{Binary: playerBinary})
	})
	session.SetDefaultVolume(cfg.Player.Volume)

	return &App{
		cfg:     cfg,
		session: session,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// Components
	searchBar   *components.SearchBar
	resultsView *components.Results
	queueView   *components.Queue
	nowPlaying  *components.NowPlaying

	// Search state
	searcher   *search.Search
	page       int
	pageTracks []core.Track
	searching  bool

	// Overlays
	showHelp bool

	// Volume level to restore after unmute
	muteRestore int

	// Error handling
	lastError   error
	errorExpiry time.Time

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	bar := components.NewSearchBar()
	bar.Input.Focus()

	return Model{
		app:         app,
		searchBar:   bar,
		resultsView: components.NewResults(),
		queueView:   components.NewQueue(),
		nowPlaying:  components.NewNowPlaying(),
	}
}

// Messages
type tickMsg time.Time
type searchDoneMsg struct {
	searcher *search.Search
	page     int
	err      error
}

// Commands
func (m Model) tick() tea.Cmd {
	interval := time.Duration(m.app.cfg.TUI.TickMs) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) doSearch(query string) tea.Cmd {
	pageSize := m.app.cfg.Search.ResultsPerPage
	filterShorts := !m.app.cfg.Search.IncludeShorts
	return func() tea.Msg {
		s := search.New(query, pageSize, filterShorts)
		_, err := s.EnsurePage(0)
		return searchDoneMsg{searcher: s, page: 0, err: err}
	}
}

func (m Model) fetchPage(page int) tea.Cmd {
	s := m.searcher
	return func() tea.Msg {
		_, err := s.EnsurePage(page)
		return searchDoneMsg{searcher: s, page: page, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textinput.Blink)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Drive the playback session. IPC reads are bounded by short
		// deadlines, so this stays well under the tick interval.
		if err := m.app.session.Tick(); err != nil {
			m.setError(err)
		}
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, m.tick()

	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.searcher = msg.searcher
		tracks := m.searcher.Page(msg.page)
		if len(tracks) == 0 && msg.page > 0 {
			// Ran off the end, stay on the last page with content.
			return m, nil
		}
		m.page = msg.page
		m.pageTracks = tracks
		m.resultsView.ResetSelection()
		if m.focusedPanel == PanelSearch && len(tracks) > 0 {
			m.focusedPanel = PanelResults
			m.searchBar.Input.Blur()
		}
		return m, nil
	}

	// Forward other messages to the text input while it has focus.
	if m.focusedPanel == PanelSearch {
		var inputCmd tea.Cmd
		m.searchBar.Input, inputCmd = m.searchBar.Input.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(5 * time.Second)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		_ = m.app.session.Close()
		return m, tea.Quit
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(panelCount - 1)
		return m, nil
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "h":
			m.showHelp = false
		}
		return m, nil
	}

	// Search panel: keys go to the input field
	if m.focusedPanel == PanelSearch {
		return m.handleSearchKeyPress(msg)
	}

	// Normal mode
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		_ = m.app.session.Close()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.focusedPanel = PanelSearch
		m.searchBar.Input.Focus()
		return m, textinput.Blink
	}

	// Paging keys take precedence while the results panel has focus.
	if m.focusedPanel == PanelResults {
		switch msg.String() {
		case "n", "l", "right":
			return m.nextPage()
		case "p", "h", "left":
			return m.prevPage()
		}
	}

	// Playback controls
	switch msg.String() {
	case " ":
		m.app.session.Control(playback.Command{Kind: playback.CmdTogglePause})
		return m, nil
	case "n":
		if err := m.app.session.Skip(); err != nil {
			m.setError(err)
		}
		return m, nil
	case "s":
		m.app.session.Control(playback.Command{Kind: playback.CmdStop})
		return m, nil
	case "<", ",":
		m.app.session.Control(playback.Command{
			Kind:  playback.CmdSeek,
			Delta: -float64(m.app.cfg.Player.SeekStep),
		})
		return m, nil
	case ">", ".":
		m.app.session.Control(playback.Command{
			Kind:  playback.CmdSeek,
			Delta: float64(m.app.cfg.Player.SeekStep),
		})
		return m, nil
	case "+", "=":
		m.adjustVolume(5)
		return m, nil
	case "-":
		m.adjustVolume(-5)
		return m, nil
	case "m":
		m.toggleMute()
		return m, nil
	}

	// Panel-specific keys
	switch m.focusedPanel {
	case PanelResults:
		return m.handleResultsKeyPress(msg)
	case PanelQueue:
		return m.handleQueueKeyPress(msg)
	}

	return m, nil
}

func (m *Model) cycleFocus(step int) {
	if m.focusedPanel == PanelSearch {
		m.searchBar.Input.Blur()
	}
	m.focusedPanel = Panel((int(m.focusedPanel) + step) % panelCount)
	if m.focusedPanel == PanelSearch {
		m.searchBar.Input.Focus()
	}
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.searchBar.Input.Value())
		if query == "" || m.searching {
			return m, nil
		}
		m.searching = true
		return m, m.doSearch(query)

	case "esc":
		m.searchBar.Input.Blur()
		m.focusedPanel = PanelResults
		return m, nil
	}

	var inputCmd tea.Cmd
	m.searchBar.Input, inputCmd = m.searchBar.Input.Update(msg)
	return m, inputCmd
}

func (m Model) handleResultsKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Digit keys jump straight to an entry (0 means the tenth).
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if key == "0" {
			idx = 9
		}
		m.resultsView.Select(idx, len(m.pageTracks))
		return m, nil
	}

	switch key {
	case "j", "down":
		m.resultsView.SelectNext(len(m.pageTracks))
	case "k", "up":
		m.resultsView.SelectPrev()
	case "enter":
		if track, ok := m.selectedResult(); ok {
			if err := m.app.session.PlayNow(track); err != nil {
				m.setError(err)
			}
		}
	case "a":
		if track, ok := m.selectedResult(); ok {
			if err := m.app.session.Submit(track); err != nil {
				m.setError(err)
			}
		}
	}

	return m, nil
}

func (m Model) nextPage() (tea.Model, tea.Cmd) {
	if m.searcher == nil || m.searching {
		return m, nil
	}
	next := m.page + 1
	if m.searcher.Exhausted() && len(m.searcher.Page(next)) == 0 {
		return m, nil
	}
	m.searching = true
	return m, m.fetchPage(next)
}

func (m Model) prevPage() (tea.Model, tea.Cmd) {
	if m.searcher != nil && m.page > 0 {
		m.page--
		m.pageTracks = m.searcher.Page(m.page)
		m.resultsView.ResetSelection()
	}
	return m, nil
}

func (m Model) handleQueueKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	queue := m.app.session.Queue()

	switch msg.String() {
	case "j", "down":
		m.queueView.SelectNext(queue.Len())
	case "k", "up":
		m.queueView.SelectPrev()
	case "enter":
		// Play the selected queued track next.
		if queue.Len() > 0 {
			queue.PromoteToFront(m.queueView.Selected())
			if err := m.app.session.Skip(); err != nil {
				m.setError(err)
			}
		}
		m.queueView.ClampSelection(queue.Len())
	case "x", "delete", "backspace":
		if _, err := queue.Remove(m.queueView.Selected()); err != nil {
			m.setError(err)
		}
		m.queueView.ClampSelection(queue.Len())
	case "c":
		queue.Clear()
		m.queueView.ClampSelection(0)
	}

	return m, nil
}

func (m Model) selectedResult() (core.Track, bool) {
	i := m.resultsView.Selected()
	if i < 0 || i >= len(m.pageTracks) {
		return core.Track{}, false
	}
	return m.pageTracks[i], true
}

func (m *Model) adjustVolume(delta int) {
	level := m.app.session.Status().Volume + delta
	if level > 100 {
		level = 100
	}
	if level < 0 {
		level = 0
	}
	m.app.session.Control(playback.Command{Kind: playback.CmdSetVolume, Level: level})
}

func (m *Model) toggleMute() {
	current := m.app.session.Status().Volume
	if current > 0 {
		m.muteRestore = current
		m.app.session.Control(playback.Command{Kind: playback.CmdSetVolume, Level: 0})
		return
	}
	level := m.muteRestore
	if level == 0 {
		level = m.app.cfg.Player.Volume
	}
	m.app.session.Control(playback.Command{Kind: playback.CmdSetVolume, Level: level})
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	searchBar := m.searchBar.Render(m.width-2, m.focusedPanel == PanelSearch, m.searching)
	nowPlaying := m.nowPlaying.Render(m.app.session.Active(), m.app.session.Status(), m.width-2)

	fixedHeight := lipgloss.Height(searchBar) + lipgloss.Height(nowPlaying) + 1
	bodyHeight := m.height - fixedHeight - 2
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	resultsWidth := m.width * 60 / 100
	queueWidth := m.width - resultsWidth - 2

	results := m.resultsView.Render(
		m.pageTracks, m.page, m.searcher != nil && m.searcher.Exhausted(),
		resultsWidth-2, bodyHeight, m.focusedPanel == PanelResults)
	queueView := m.queueView.Render(
		m.app.session.Queue().Tracks(),
		queueWidth-2, bodyHeight, m.focusedPanel == PanelQueue)

	body := lipgloss.JoinHorizontal(lipgloss.Top, results, queueView)

	return lipgloss.JoinVertical(lipgloss.Left,
		searchBar,
		body,
		nowPlaying,
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  /:search  space:pause  n:skip  a:enqueue  </>:seek  +/-:volume  tab:panel")

	if m.lastError != nil {
		status = styles.Errored.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Strum - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Focus search
  Tab          Next panel
  Shift+Tab    Previous panel

  Playback
  ────────
  Space        Play/Pause
  n            Skip to next queued track
  s            Stop playback
  <, ,         Seek backward
  >, .         Seek forward
  +/=          Volume up
  -            Volume down
  m            Mute/unmute

  Results Panel
  ─────────────
  j/↓ k/↑      Move selection
  1-9, 0       Jump to entry
  Enter        Play now
  a            Add to queue
  n/→ p/←      Next/previous page

  Queue Panel
  ───────────
  j/↓ k/↑      Move selection
  Enter        Play selected next
  x, Delete    Remove from queue
  c            Clear queue

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI application
func Run(cfg *config.Config, playerBinary string) error {
	styles.SetTheme(cfg.TUI.Theme)

	app := NewApp(cfg, playerBinary)
	defer app.session.Close()

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
