// Package prefs holds the persisted policy consulted on every intercepted
// button press: the applications to leave alone and whether the two buttons
// swap directions.
package prefs

import (
	"io"
	"log/slog"
	"sync"
)

// Keys used in the backing store.
const (
	KeyIgnoredApplications = "ignored-applications"
	KeyReverseButtons      = "reverse-buttons"
)

// Store is the process-wide policy cell set. The ignore list and the reversal
// flag are locked independently so a write to one never stalls readers of the
// other.
type Store struct {
	backend Backend
	logger  *slog.Logger

	ignoredMu sync.RWMutex
	ignored   []string

	reverseMu sync.RWMutex
	reverse   bool
}

// Open loads the persisted values and returns a ready store. Read errors are
// logged and the affected value falls back to its default.
func Open(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if backend == nil {
		backend = NewMemoryBackend()
	}

	s := &Store{backend: backend, logger: logger}
	s.load()
	return s
}

// reloader is implemented by backends that cache an external source.
type reloader interface {
	Reload() error
}

// Reload refreshes both cells from the backend. A value that cannot be read
// keeps its current setting; a key that is no longer stored falls back to
// its default.
func (s *Store) Reload() {
	if r, ok := s.backend.(reloader); ok {
		if err := r.Reload(); err != nil {
			s.logger.Warn("reload preferences", "error", err)
			return
		}
	}
	s.load()
}

func (s *Store) load() {
	ignored, ok, err := s.backend.Strings(KeyIgnoredApplications)
	if err != nil {
		s.logger.Warn("load ignored applications", "error", err)
	} else {
		s.ignoredMu.Lock()
		s.ignored = nil
		if ok {
			s.ignored = append([]string(nil), ignored...)
		}
		s.ignoredMu.Unlock()
	}

	reverse, ok, err := s.backend.Bool(KeyReverseButtons)
	if err != nil {
		s.logger.Warn("load reverse buttons flag", "error", err)
	} else {
		s.reverseMu.Lock()
		s.reverse = ok && reverse
		s.reverseMu.Unlock()
	}
}

// IsIgnored reports whether id is currently in the ignore list.
func (s *Store) IsIgnored(id string) bool {
	s.ignoredMu.RLock()
	defer s.ignoredMu.RUnlock()
	for _, candidate := range s.ignored {
		if candidate == id {
			return true
		}
	}
	return false
}

// Ignored returns a copy of the ignore list in insertion order.
func (s *Store) Ignored() []string {
	s.ignoredMu.RLock()
	defer s.ignoredMu.RUnlock()
	return append([]string(nil), s.ignored...)
}

// AddIgnored appends id and persists the list. Existing entries are not
// checked, so repeated adds leave duplicates behind.
func (s *Store) AddIgnored(id string) {
	s.ignoredMu.Lock()
	defer s.ignoredMu.Unlock()

	next := make([]string, len(s.ignored), len(s.ignored)+1)
	copy(next, s.ignored)
	s.ignored = append(next, id)
	s.persistIgnoredLocked()
}

// RemoveIgnored drops every entry equal to id and persists the list.
func (s *Store) RemoveIgnored(id string) {
	s.ignoredMu.Lock()
	defer s.ignoredMu.Unlock()

	next := make([]string, 0, len(s.ignored))
	for _, candidate := range s.ignored {
		if candidate != id {
			next = append(next, candidate)
		}
	}
	s.ignored = next
	s.persistIgnoredLocked()
}

// IsReversed reports whether the buttons swap their swipe directions.
func (s *Store) IsReversed() bool {
	s.reverseMu.RLock()
	defer s.reverseMu.RUnlock()
	return s.reverse
}

// ToggleReversed flips the reversal flag, persists it and returns the new value.
func (s *Store) ToggleReversed() bool {
	s.reverseMu.Lock()
	defer s.reverseMu.Unlock()

	s.reverse = !s.reverse
	if err := s.backend.SetBool(KeyReverseButtons, s.reverse); err != nil {
		s.logger.Warn("persist reverse buttons flag", "error", err)
	}
	return s.reverse
}

func (s *Store) persistIgnoredLocked() {
	if err := s.backend.SetStrings(KeyIgnoredApplications, s.ignored); err != nil {
		s.logger.Warn("persist ignored applications", "error", err, "count", len(s.ignored))
	}
}
