package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strumcli/strum/internal/config"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/playback"
)

// fakeController satisfies playback.Controller without spawning anything.
type fakeController struct {
	status core.PlaybackStatus
}

func (f *fakeController) Play(track core.Track) error {
	f.status = core.DefaultStatus()
	f.status.Playing = true
	f.status.Title = track.Title
	return nil
}
func (f *fakeController) TogglePause() error          { return nil }
func (f *fakeController) Seek(float64) error          { return nil }
func (f *fakeController) SetVolume(level int) error   { f.status.Volume = level; return nil }
func (f *fakeController) Stop() error                 { return nil }
func (f *fakeController) RefreshStatus()              {}
func (f *fakeController) TrackFinished() bool         { return false }
func (f *fakeController) Defunct() bool               { return false }
func (f *fakeController) Status() core.PlaybackStatus { return f.status }
func (f *fakeController) Close() error                { return nil }

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	session := playback.NewSession(func() playback.Controller {
		return &fakeController{}
	})
	m := NewModel(&App{cfg: cfg, session: session})
	m.width = 100
	m.height = 40
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestTabCyclesFocus(t *testing.T) {
	m := testModel(t)
	if m.focusedPanel != PanelSearch {
		t.Fatalf("expected initial focus on search, got %v", m.focusedPanel)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedPanel != PanelResults {
		t.Errorf("expected results focus, got %v", m.focusedPanel)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedPanel != PanelQueue {
		t.Errorf("expected queue focus, got %v", m.focusedPanel)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedPanel != PanelSearch {
		t.Errorf("expected focus to wrap to search, got %v", m.focusedPanel)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedPanel != PanelQueue {
		t.Errorf("expected shift+tab to wrap backwards to queue, got %v", m.focusedPanel)
	}
}

func TestSearchEnterStartsSearch(t *testing.T) {
	m := testModel(t)
	m.searchBar.Input.SetValue("test query")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.searching {
		t.Error("expected searching flag set")
	}
	if cmd == nil {
		t.Error("expected a search command")
	}
}

func TestSearchEnterIgnoresEmptyQuery(t *testing.T) {
	m := testModel(t)
	m.searchBar.Input.SetValue("   ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.searching {
		t.Error("expected no search for blank query")
	}
	if cmd != nil {
		t.Error("expected no command for blank query")
	}
}

func TestDigitJumpClampsToPage(t *testing.T) {
	m := testModel(t)
	m.focusedPanel = PanelResults
	m.pageTracks = []core.Track{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}

	m = update(t, m, key("7"))
	if got := m.resultsView.Selected(); got != 2 {
		t.Errorf("expected selection clamped to 2, got %d", got)
	}

	m = update(t, m, key("2"))
	if got := m.resultsView.Selected(); got != 1 {
		t.Errorf("expected selection 1, got %d", got)
	}
}

func TestEnterPlaysSelectedResult(t *testing.T) {
	m := testModel(t)
	m.focusedPanel = PanelResults
	m.pageTracks = []core.Track{{ID: "a", Title: "first"}, {ID: "b", Title: "second"}}

	m = update(t, m, key("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.app.session.Active() {
		t.Fatal("expected an active session after enter")
	}
	if got := m.app.session.Status().Title; got != "second" {
		t.Errorf("expected second track playing, got %q", got)
	}
}

func TestEnqueueFromResults(t *testing.T) {
	m := testModel(t)
	m.focusedPanel = PanelResults
	m.pageTracks = []core.Track{{ID: "a", Title: "first"}, {ID: "b", Title: "second"}}

	// First submit plays immediately, second lands in the queue.
	m = update(t, m, key("a"))
	m = update(t, m, key("j"))
	m = update(t, m, key("a"))

	if got := m.app.session.Queue().Len(); got != 1 {
		t.Errorf("expected 1 queued track, got %d", got)
	}
}

func TestQueueRemoveClampsSelection(t *testing.T) {
	m := testModel(t)
	for _, tr := range []core.Track{{ID: "a"}, {ID: "b"}} {
		m.app.session.Queue().Push(tr)
	}
	m.focusedPanel = PanelQueue

	m = update(t, m, key("j"))
	m = update(t, m, key("x"))
	if got := m.app.session.Queue().Len(); got != 1 {
		t.Fatalf("expected 1 track left, got %d", got)
	}
	if got := m.queueView.Selected(); got != 0 {
		t.Errorf("expected selection clamped to 0, got %d", got)
	}
}

func TestMuteRoundTrip(t *testing.T) {
	m := testModel(t)
	m.focusedPanel = PanelResults
	m.pageTracks = []core.Track{{ID: "a", Title: "first"}}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Commands drain one per tick.
	m = update(t, m, key("m"))
	m = update(t, m, tickMsg{})
	if got := m.app.session.Status().Volume; got != 0 {
		t.Fatalf("expected muted volume 0, got %d", got)
	}

	m = update(t, m, key("m"))
	m = update(t, m, tickMsg{})
	if got := m.app.session.Status().Volume; got != 100 {
		t.Errorf("expected volume restored to 100, got %d", got)
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := testModel(t)
	m.focusedPanel = PanelResults

	m = update(t, m, key("?"))
	if !m.showHelp {
		t.Fatal("expected help overlay shown")
	}
	m = update(t, m, key("?"))
	if m.showHelp {
		t.Error("expected help overlay hidden")
	}
}
