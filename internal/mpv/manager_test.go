package mpv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strumcli/strum/internal/core"
	strumerrors "github.com/strumcli/strum/internal/errors"
)

// fakeManager returns a manager wired to an in-process fake player. The
// spawn binary is a harmless no-op since the fake already owns the socket.
func fakeManager(t *testing.T) (*Manager, *fakePlayer) {
	t.Helper()
	fake := newFakePlayer(t)
	m := NewManager(Options{
		Binary:         "true",
		SocketPath:     fake.path,
		ConnectTimeout: time.Second,
		ConnectPoll:    10 * time.Millisecond,
		IPCTimeout:     100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = m.Close() })
	return m, fake
}

func sampleTrack() core.Track {
	return core.Track{ID: "abc123", Title: "Some Song", Duration: "3:00", Channel: "Ch", Views: 42}
}

func TestPlaySpawnsAndLoads(t *testing.T) {
	m, fake := fakeManager(t)

	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if m.State() != StateConnected {
		t.Errorf("State = %v, want connected", m.State())
	}

	waitFor(t, func() bool { return len(fake.receivedCommands()) == 1 })
	cmd := fake.receivedCommands()[0]
	if cmd[0] != "loadfile" || cmd[1] != sampleTrack().URL() {
		t.Errorf("load command = %v", cmd)
	}

	st := m.Status()
	if st.Title != "Some Song" {
		t.Errorf("Title = %q, want %q", st.Title, "Some Song")
	}
	if !st.Playing || st.Paused || st.Finished {
		t.Errorf("flags = playing=%v paused=%v finished=%v", st.Playing, st.Paused, st.Finished)
	}
}

func TestPlaySpawnErrorLeavesCleanState(t *testing.T) {
	fake := newFakePlayer(t)
	m := NewManager(Options{
		Binary:     filepath.Join(t.TempDir(), "no-such-player"),
		SocketPath: fake.path,
	})
	t.Cleanup(func() { _ = m.Close() })

	err := m.Play(sampleTrack())
	if !errors.Is(err, strumerrors.ErrSpawn) {
		t.Fatalf("Play = %v, want ErrSpawn", err)
	}
	if m.State() != StateUninitialized {
		t.Errorf("State = %v, want uninitialized", m.State())
	}

	// A later attempt with a working binary succeeds: the failed spawn did
	// not leave a half-initialized session behind.
	m.opts.Binary = "true"
	m.opts.ConnectPoll = 10 * time.Millisecond
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("second Play: %v", err)
	}
}

func TestPlayConnectTimeout(t *testing.T) {
	m := NewManager(Options{
		Binary:         "true",
		SocketPath:     filepath.Join(t.TempDir(), "never.sock"),
		ConnectTimeout: 150 * time.Millisecond,
		ConnectPoll:    20 * time.Millisecond,
	})
	t.Cleanup(func() { _ = m.Close() })

	err := m.Play(sampleTrack())
	if !errors.Is(err, strumerrors.ErrConnectTimeout) {
		t.Fatalf("Play = %v, want ErrConnectTimeout", err)
	}
	if m.State() != StateUninitialized {
		t.Errorf("State = %v, want uninitialized", m.State())
	}
}

func TestControlsAreNoopsWhenUninitialized(t *testing.T) {
	m := NewManager(Options{})
	t.Cleanup(func() { _ = m.Close() })

	before := m.Status()
	if err := m.TogglePause(); err != nil {
		t.Errorf("TogglePause = %v", err)
	}
	if err := m.Seek(10); err != nil {
		t.Errorf("Seek = %v", err)
	}
	if err := m.SetVolume(30); err != nil {
		t.Errorf("SetVolume = %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Errorf("Stop = %v", err)
	}
	if m.Status() != before {
		t.Errorf("status changed: %+v -> %+v", before, m.Status())
	}
	if m.State() != StateUninitialized {
		t.Errorf("State = %v, want uninitialized", m.State())
	}
}

func TestControlVerbs(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if err := m.TogglePause(); err != nil {
		t.Fatalf("TogglePause: %v", err)
	}
	if !m.Status().Paused {
		t.Error("Paused = false after toggle")
	}

	if err := m.Seek(-10); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if err := m.SetVolume(150); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if m.Status().Volume != 100 {
		t.Errorf("Volume = %d, want clamped 100", m.Status().Volume)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	waitFor(t, func() bool { return len(fake.receivedCommands()) == 5 })
	cmds := fake.receivedCommands()
	wants := [][]string{
		{"loadfile", sampleTrack().URL()},
		{"cycle", "pause"},
		{"seek", "-10", "relative"},
		{"set_property", "volume", "100"},
		{"stop"},
	}
	for i, want := range wants {
		got := cmds[i]
		if len(got) != len(want) {
			t.Fatalf("command %d = %v, want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("command %d = %v, want %v", i, got, want)
				break
			}
		}
	}
}

func TestRefreshStatusOverwritesSnapshot(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	fake.setProp("time-pos", 42.0)
	fake.setProp("duration", 300.0)
	fake.setProp("pause", true)
	fake.setProp("volume", 80.0)

	m.RefreshStatus()

	st := m.Status()
	if st.Position != 42*time.Second {
		t.Errorf("Position = %v, want 42s", st.Position)
	}
	if st.Duration != 300*time.Second {
		t.Errorf("Duration = %v, want 5m", st.Duration)
	}
	if !st.Paused {
		t.Error("Paused = false, want true")
	}
	if st.Volume != 80 {
		t.Errorf("Volume = %d, want 80", st.Volume)
	}
	if st.Finished {
		t.Error("Finished = true, want false")
	}
}

func TestRefreshStatusBatchOrNothing(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	m.RefreshStatus()
	prev := m.Status()

	// A single failing property leaves every field from the prior refresh
	// untouched, including the ones polled before the failure.
	fake.setProp("time-pos", 99.0)
	fake.setProp("pause", true)
	fake.setProp("volume", 10.0)
	fake.breakProp("duration", "property unavailable")

	m.RefreshStatus()

	if got := m.Status(); got != prev {
		t.Errorf("snapshot changed on partial failure:\n got %+v\nwant %+v", got, prev)
	}
	if m.State() != StateConnected {
		t.Errorf("State = %v, want connected", m.State())
	}
}

func TestRefreshStatusDetectsEndOfTrack(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if m.TrackFinished() {
		t.Fatal("TrackFinished before refresh")
	}

	fake.setProp("eof-reached", true)
	m.RefreshStatus()

	if !m.TrackFinished() {
		t.Error("TrackFinished = false, want true")
	}
}

func TestBrokenConnectionEndsSession(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	// Wait until the fake has accepted the connection and consumed the load
	// command, so dropConnections has an established connection to close.
	waitFor(t, func() bool { return len(fake.receivedCommands()) == 1 })
	fake.dropConnections()

	// The dead socket surfaces as a hard IO failure somewhere in the poll;
	// the manager must fall back to uninitialized rather than retrying a
	// dead connection forever.
	waitFor(t, func() bool {
		m.RefreshStatus()
		return m.State() == StateUninitialized
	})
	if !m.Defunct() {
		t.Error("Defunct = false after teardown")
	}
}

func TestCloseRemovesSocketAndIsIdempotent(t *testing.T) {
	m, fake := fakeManager(t)
	if err := m.Play(sampleTrack()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(fake.path); !os.IsNotExist(err) {
		t.Errorf("socket file still present after Close: %v", err)
	}
	if m.State() != StateStopped {
		t.Errorf("State = %v, want stopped", m.State())
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
