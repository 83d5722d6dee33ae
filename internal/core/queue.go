package core

import (
	"github.com/strumcli/strum/internal/errors"
)

// Queue is the ordered list of tracks waiting to play. Insertion order is
// play order. A selection cursor is kept alongside the tracks for UI
// highlighting; it always satisfies 0 <= cursor < max(1, len).
//
// The queue knows nothing about playback: the currently loaded track is
// owned by the player manager, and removing a queued track never stops it.
// Mutation happens only on the control loop's goroutine, so no locking.
type Queue struct {
	tracks []Track
	cursor int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a track to the end of the queue.
func (q *Queue) Push(t Track) {
	q.tracks = append(q.tracks, t)
}

// PopFront removes and returns the head of the queue. The cursor shifts
// down by one when positive so the highlighted row stays on the same
// logical item.
func (q *Queue) PopFront() (Track, error) {
	if len(q.tracks) == 0 {
		return Track{}, errors.ErrQueueEmpty
	}
	t := q.tracks[0]
	q.tracks = q.tracks[1:]
	if q.cursor > 0 {
		q.cursor--
	}
	q.clampCursor()
	return t, nil
}

// Remove deletes the track at index. Removing an index before the cursor
// shifts the cursor down by one so the same logical item stays highlighted.
func (q *Queue) Remove(index int) (Track, error) {
	if index < 0 || index >= len(q.tracks) {
		return Track{}, errors.ErrIndexOutOfRange
	}
	t := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	if index < q.cursor {
		q.cursor--
	}
	q.clampCursor()
	return t, nil
}

// PromoteToFront moves the track at index to position 0, making it the next
// auto-advance target, and resets the cursor to 0. It is a no-op for index 0
// or an out-of-range index.
func (q *Queue) PromoteToFront(index int) {
	if index <= 0 || index >= len(q.tracks) {
		return
	}
	t := q.tracks[index]
	copy(q.tracks[1:index+1], q.tracks[:index])
	q.tracks[0] = t
	q.cursor = 0
}

// Clear empties the queue and resets the cursor. The currently loaded track
// is unaffected; only future tracks are removed.
func (q *Queue) Clear() {
	q.tracks = nil
	q.cursor = 0
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Get returns the track at index without removing it.
func (q *Queue) Get(index int) (Track, bool) {
	if index < 0 || index >= len(q.tracks) {
		return Track{}, false
	}
	return q.tracks[index], true
}

// Tracks returns a copy of the queued tracks in play order.
func (q *Queue) Tracks() []Track {
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// Cursor returns the selection cursor.
func (q *Queue) Cursor() int {
	return q.cursor
}

// MoveCursor shifts the selection cursor by delta, clamped to the valid
// range.
func (q *Queue) MoveCursor(delta int) {
	q.cursor += delta
	if q.cursor < 0 {
		q.cursor = 0
	}
	q.clampCursor()
}

func (q *Queue) clampCursor() {
	if len(q.tracks) == 0 {
		q.cursor = 0
		return
	}
	if q.cursor >= len(q.tracks) {
		q.cursor = len(q.tracks) - 1
	}
	if q.cursor < 0 {
		q.cursor = 0
	}
}
