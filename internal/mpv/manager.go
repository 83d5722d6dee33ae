package mpv

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/errors"
)

// State describes the manager's session lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLaunching
	StateConnected
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLaunching:
		return "launching"
	case StateConnected:
		return "connected"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options configures a Manager.
type Options struct {
	// Binary is the player executable. Defaults to "mpv".
	Binary string
	// ExtraArgs are appended to the spawn arguments.
	ExtraArgs []string
	// SocketPath overrides the derived IPC socket path.
	SocketPath string
	// ConnectTimeout bounds the wait for the socket to appear after spawn.
	// Defaults to 2s.
	ConnectTimeout time.Duration
	// ConnectPoll is the interval between socket existence checks.
	// Defaults to 100ms.
	ConnectPoll time.Duration
	// IPCTimeout bounds each read/write on the control socket.
	// Defaults to 100ms.
	IPCTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = "mpv"
	}
	if o.SocketPath == "" {
		o.SocketPath = filepath.Join(os.TempDir(), "strum-"+strconv.Itoa(os.Getpid())+".sock")
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 2 * time.Second
	}
	if o.ConnectPoll <= 0 {
		o.ConnectPoll = 100 * time.Millisecond
	}
	if o.IPCTimeout <= 0 {
		o.IPCTimeout = DefaultIPCTimeout
	}
	return o
}

// Manager owns one player subprocess and its IPC connection. The connection
// never outlives the process: both are released together, on any exit path,
// through Close or the internal teardown.
//
// All methods must be called from a single goroutine.
type Manager struct {
	opts   Options
	cmd    *exec.Cmd
	ipc    *Client
	state  State
	status core.PlaybackStatus
}

// NewManager creates a manager. No process is spawned until the first Play.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:   opts.withDefaults(),
		status: core.DefaultStatus(),
	}
}

// Play loads a track, spawning and connecting the player first if no
// session exists.
func (m *Manager) Play(track core.Track) error {
	if m.ipc == nil {
		if err := m.launch(); err != nil {
			return err
		}
	}

	if err := m.ipc.SendCommand("loadfile", track.URL()); err != nil {
		m.teardown()
		return fmt.Errorf("%w: %v", errors.ErrLoad, err)
	}

	m.status.Title = track.Title
	m.status.Playing = true
	m.status.Paused = false
	m.status.Finished = false
	m.status.Position = 0
	m.status.Duration = 0
	return nil
}

func (m *Manager) launch() error {
	args := append([]string{
		"--idle",
		"--input-ipc-server=" + m.opts.SocketPath,
		"--no-video",
		"--no-terminal",
	}, m.opts.ExtraArgs...)

	cmd := exec.Command(m.opts.Binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrSpawn, err)
	}
	m.cmd = cmd
	m.state = StateLaunching

	if err := m.waitForSocket(); err != nil {
		m.teardown()
		return err
	}

	ipc, err := Dial(m.opts.SocketPath, m.opts.IPCTimeout)
	if err != nil {
		m.teardown()
		return err
	}
	m.ipc = ipc
	m.state = StateConnected
	return nil
}

func (m *Manager) waitForSocket() error {
	deadline := time.Now().Add(m.opts.ConnectTimeout)
	for {
		if _, err := os.Stat(m.opts.SocketPath); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", errors.ErrConnectTimeout, m.opts.SocketPath)
		}
		time.Sleep(m.opts.ConnectPoll)
	}
}

// TogglePause toggles the paused state. A no-op without a connection:
// callers may invoke controls speculatively from any panel.
func (m *Manager) TogglePause() error {
	if m.ipc == nil {
		return nil
	}
	if err := m.ipc.SendCommand("cycle", "pause"); err != nil {
		m.teardown()
		return nil
	}
	m.status.Paused = !m.status.Paused
	return nil
}

// Seek moves the playback position by delta seconds. No-op without a
// connection.
func (m *Manager) Seek(deltaSeconds float64) error {
	if m.ipc == nil {
		return nil
	}
	if err := m.ipc.SendCommand("seek", strconv.FormatFloat(deltaSeconds, 'f', -1, 64), "relative"); err != nil {
		m.teardown()
	}
	return nil
}

// SetVolume sets the volume level (0-100). No-op without a connection.
func (m *Manager) SetVolume(level int) error {
	if m.ipc == nil {
		return nil
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	if err := m.ipc.SendCommand("set_property", "volume", strconv.Itoa(level)); err != nil {
		m.teardown()
		return nil
	}
	m.status.Volume = level
	return nil
}

// Stop stops playback, leaving the idle process running for the next load.
// No-op without a connection.
func (m *Manager) Stop() error {
	if m.ipc == nil {
		return nil
	}
	if err := m.ipc.SendCommand("stop"); err != nil {
		m.teardown()
		return nil
	}
	vol := m.status.Volume
	m.status = core.DefaultStatus()
	m.status.Volume = vol
	return nil
}

// RefreshStatus polls the player's properties sequentially and overwrites
// the status snapshot only if every read succeeds. Transient failures leave
// the previous snapshot untouched; a broken connection ends the session so
// the next Play respawns fresh.
func (m *Manager) RefreshStatus() {
	if m.ipc == nil {
		return
	}

	next := m.status

	pos, err := m.ipc.GetFloat("time-pos")
	if err != nil {
		m.absorb(err)
		return
	}
	dur, err := m.ipc.GetFloat("duration")
	if err != nil {
		m.absorb(err)
		return
	}
	paused, err := m.ipc.GetBool("pause")
	if err != nil {
		m.absorb(err)
		return
	}
	vol, err := m.ipc.GetFloat("volume")
	if err != nil {
		m.absorb(err)
		return
	}
	eof, err := m.ipc.GetBool("eof-reached")
	if err != nil {
		m.absorb(err)
		return
	}

	next.Position = time.Duration(pos * float64(time.Second))
	next.Duration = time.Duration(dur * float64(time.Second))
	next.Paused = paused
	next.Volume = int(vol)
	next.Finished = eof
	m.status = next
}

// absorb decides whether a failed property read is a transient protocol
// condition (common around track transitions) or a dead connection.
func (m *Manager) absorb(err error) {
	if stderrors.Is(err, errors.ErrPropertyUnavailable) ||
		stderrors.Is(err, errors.ErrTimeout) ||
		stderrors.Is(err, errors.ErrProtocol) {
		return
	}
	m.teardown()
}

// TrackFinished reports the end-of-track flag from the last successful
// status refresh.
func (m *Manager) TrackFinished() bool {
	return m.status.Finished
}

// Defunct reports whether the player process has gone away, either torn
// down after an IO failure or never launched. Play on a defunct manager
// respawns it.
func (m *Manager) Defunct() bool {
	return m.state == StateUninitialized
}

// Status returns the current playback snapshot.
func (m *Manager) Status() core.PlaybackStatus {
	return m.status
}

// State returns the session lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// teardown releases the connection and the process together and returns the
// manager to the uninitialized state so the next Play respawns.
func (m *Manager) teardown() {
	if m.ipc != nil {
		_ = m.ipc.Close()
		m.ipc = nil
	}
	if m.cmd != nil {
		_ = m.cmd.Process.Kill()
		_ = m.cmd.Wait()
		m.cmd = nil
	}
	_ = os.Remove(m.opts.SocketPath)
	vol := m.status.Volume
	m.status = core.DefaultStatus()
	m.status.Volume = vol
	m.state = StateUninitialized
}

// Close kills the subprocess and removes the socket file, regardless of
// whether the process was already dead. Safe to call more than once.
func (m *Manager) Close() error {
	m.teardown()
	m.state = StateStopped
	return nil
}
