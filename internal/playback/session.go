// Package playback ties the player manager and the queue together under a
// single cooperative control loop.
package playback

import (
	stderrors "errors"

	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/errors"
)

// Controller is the playback facade the session drives. *mpv.Manager is the
// production implementation.
type Controller interface {
	Play(track core.Track) error
	TogglePause() error
	Seek(deltaSeconds float64) error
	SetVolume(level int) error
	Stop() error
	RefreshStatus()
	TrackFinished() bool
	Defunct() bool
	Status() core.PlaybackStatus
	Close() error
}

// CommandKind identifies a user-issued control command.
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdSeek
	CmdSetVolume
	CmdStop
)

// Command is one control intent queued between ticks.
type Command struct {
	Kind  CommandKind
	Delta float64 // CmdSeek
	Level int     // CmdSetVolume
}

// Session is the control-loop state machine. It is either idle (no live
// controller) or active, and every transition happens on the caller's
// goroutine: one Tick drives one status refresh, at most one auto-advance
// and at most one queued control command.
type Session struct {
	newController func() Controller
	player        Controller
	queue         *core.Queue
	pending       []Command
	defaultVolume int
}

// NewSession creates an idle session. The factory is invoked each time the
// session needs a fresh controller after going idle.
func NewSession(factory func() Controller) *Session {
	return &Session{
		newController: factory,
		queue:         core.NewQueue(),
	}
}

// SetDefaultVolume sets the volume applied when a fresh controller starts.
func (s *Session) SetDefaultVolume(level int) {
	s.defaultVolume = level
}

// Queue returns the pending-track queue.
func (s *Session) Queue() *core.Queue {
	return s.queue
}

// Active reports whether a live controller exists.
func (s *Session) Active() bool {
	return s.player != nil
}

// Status returns the current playback snapshot, or the default snapshot
// while idle.
func (s *Session) Status() core.PlaybackStatus {
	if s.player == nil {
		return core.DefaultStatus()
	}
	return s.player.Status()
}

// Submit routes a play intent through the queue: the track is appended, and
// if the session is idle it is popped right back out and loaded.
func (s *Session) Submit(t core.Track) error {
	s.queue.Push(t)
	if s.player == nil {
		return s.advance()
	}
	return nil
}

// PlayNow loads a track immediately, replacing whatever is playing. Queued
// tracks are untouched.
func (s *Session) PlayNow(t core.Track) error {
	return s.playTrack(t)
}

// Skip abandons the loaded track and advances to the next queued one,
// going idle if the queue is empty.
func (s *Session) Skip() error {
	return s.advance()
}

// Control records a user control command to be applied on a later tick.
func (s *Session) Control(c Command) {
	s.pending = append(s.pending, c)
}

// Tick runs one control-loop iteration in fixed order: refresh status,
// auto-advance on end-of-track, then apply at most one queued control
// command. Auto-advance runs before user commands so a play landing in the
// same tick the previous track ended is never dropped. A defunct player
// (process gone after a connection failure) also advances, so a mid-session
// crash moves on to the next queued track instead of stalling.
func (s *Session) Tick() error {
	var err error
	if s.player != nil {
		s.player.RefreshStatus()
		if s.player.TrackFinished() || s.player.Defunct() {
			err = s.advance()
		}
	}
	s.drainOne()
	return err
}

func (s *Session) advance() error {
	t, err := s.queue.PopFront()
	if err != nil {
		if stderrors.Is(err, errors.ErrQueueEmpty) {
			s.shutdown()
			return nil
		}
		return err
	}
	return s.playTrack(t)
}

func (s *Session) playTrack(t core.Track) error {
	wasIdle := s.player == nil
	if wasIdle {
		s.player = s.newController()
	}
	if err := s.player.Play(t); err != nil {
		if wasIdle {
			s.shutdown()
		}
		return err
	}
	if wasIdle && s.defaultVolume > 0 {
		_ = s.player.SetVolume(s.defaultVolume)
	}
	return nil
}

func (s *Session) drainOne() {
	if len(s.pending) == 0 {
		return
	}
	c := s.pending[0]
	s.pending = s.pending[1:]
	if s.player == nil {
		return
	}
	switch c.Kind {
	case CmdTogglePause:
		_ = s.player.TogglePause()
	case CmdSeek:
		_ = s.player.Seek(c.Delta)
	case CmdSetVolume:
		_ = s.player.SetVolume(c.Level)
	case CmdStop:
		_ = s.player.Stop()
	}
}

func (s *Session) shutdown() {
	if s.player == nil {
		return
	}
	_ = s.player.Stop()
	_ = s.player.Close()
	s.player = nil
}

// Close tears the session down unconditionally.
func (s *Session) Close() error {
	s.shutdown()
	return nil
}
