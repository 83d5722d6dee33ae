// Package search provides lazily-paginated catalog search backed by yt-dlp.
package search

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/strumcli/strum/internal/core"
)

const (
	// searchCeiling caps how deep a single query can page.
	searchCeiling = 500
	// minTrackSeconds filters out shorts when the filter is enabled.
	minTrackSeconds = 180.0
)

// Runner executes the external search tool and returns its stdout. Tests
// inject canned output here.
type Runner func(args ...string) ([]byte, error)

func execRunner(args ...string) ([]byte, error) {
	return exec.Command("yt-dlp", args...).Output()
}

// Search fetches one batch of raw results at a time and caches everything
// already fetched, so paging backwards never refetches.
type Search struct {
	query        string
	pageSize     int
	filterShorts bool
	run          Runner

	results   []core.Track
	seen      map[uint64]struct{}
	rawCursor int
	exhausted bool
}

// New creates a search for the given query. A zero pageSize defaults to 20.
func New(query string, pageSize int, filterShorts bool) *Search {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Search{
		query:        query,
		pageSize:     pageSize,
		filterShorts: filterShorts,
		run:          execRunner,
		seen:         make(map[uint64]struct{}),
	}
}

// SetRunner overrides the command runner.
func (s *Search) SetRunner(run Runner) {
	s.run = run
}

// Reset starts over with a new query, clearing the cache.
func (s *Search) Reset(query string) {
	s.query = query
	s.results = nil
	s.seen = make(map[uint64]struct{})
	s.rawCursor = 0
	s.exhausted = false
}

// Query returns the active query string.
func (s *Search) Query() string {
	return s.query
}

// Results returns all tracks fetched so far.
func (s *Search) Results() []core.Track {
	return s.results
}

// Exhausted reports whether the catalog has no further results.
func (s *Search) Exhausted() bool {
	return s.exhausted
}

// EnsurePage fetches batches until page (0-indexed) is displayable or the
// catalog runs out. It returns the number of cached results.
func (s *Search) EnsurePage(page int) (int, error) {
	if s.query == "" {
		return 0, nil
	}
	needed := (page + 1) * s.pageSize
	for len(s.results) < needed && !s.exhausted {
		if err := s.fetchBatch(); err != nil {
			return len(s.results), err
		}
	}
	return len(s.results), nil
}

// Page returns the cached tracks for a 0-indexed page.
func (s *Search) Page(page int) []core.Track {
	start := page * s.pageSize
	if start >= len(s.results) {
		return nil
	}
	end := start + s.pageSize
	if end > len(s.results) {
		end = len(s.results)
	}
	return s.results[start:end]
}

func (s *Search) fetchBatch() error {
	// Shorts filtering discards many raw results, so over-fetch to fill a
	// display page in fewer round trips.
	rawBatch := s.pageSize
	if s.filterShorts {
		rawBatch = s.pageSize * 3
	}

	start := s.rawCursor + 1 // playlist items are 1-indexed
	end := s.rawCursor + rawBatch
	if end > searchCeiling {
		end = searchCeiling
	}
	if start > searchCeiling {
		s.exhausted = true
		return nil
	}

	out, err := s.run(
		"--flat-playlist",
		"--no-warnings",
		"--playlist-items", fmt.Sprintf("%d:%d", start, end),
		fmt.Sprintf("ytsearch%d:%s", searchCeiling, s.query),
		"--print", "%(title)s|%(duration_string|N/A)s|%(channel|Unknown)s|%(view_count|0)s|%(id)s|%(duration|0)s",
	)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rawCount := 0
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rawCount++

		track, seconds, ok := parseLine(line)
		if !ok {
			continue
		}
		if s.filterShorts && seconds < minTrackSeconds {
			continue
		}
		if s.isDuplicate(track) {
			continue
		}
		s.results = append(s.results, track)
	}

	s.rawCursor = end
	if rawCount < rawBatch || end >= searchCeiling {
		s.exhausted = true
	}
	return nil
}

// isDuplicate suppresses repeated entries across batches; the catalog
// occasionally returns the same item near slice boundaries.
func (s *Search) isDuplicate(track core.Track) bool {
	h, err := hashstructure.Hash(track, hashstructure.FormatV2, nil)
	if err != nil {
		return false
	}
	if _, dup := s.seen[h]; dup {
		return true
	}
	s.seen[h] = struct{}{}
	return false
}

// parseLine parses one pipe-separated output line into a track plus its
// raw duration in seconds. Lines without an id are dropped.
func parseLine(line string) (core.Track, float64, bool) {
	parts := strings.SplitN(line, "|", 6)
	if len(parts) < 6 {
		return core.Track{}, 0, false
	}

	id := strings.TrimSpace(parts[4])
	if id == "" {
		return core.Track{}, 0, false
	}

	views, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	if err != nil {
		views = 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
	if err != nil {
		seconds = 0
	}

	return core.Track{
		Title:    parts[0],
		Duration: parts[1],
		Channel:  parts[2],
		Views:    views,
		ID:       id,
	}, seconds, true
}
