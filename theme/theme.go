package theme

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownMode indicates a preference string other than "dark" or "light".
var ErrUnknownMode = errors.New("theme: unknown mode")

// Mode is the active color scheme.
type Mode string

const (
	// Dark is the default scheme.
	Dark Mode = "dark"
	// Light is the day scheme.
	Light Mode = "light"
)

// ParseMode validates s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Dark, Light:
		return Mode(s), nil
	}
	return Dark, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// IsDark reports whether m is Dark.
func (m Mode) IsDark() bool { return m != Light }

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Source is the read side of the theme consumed by the frame driver.
type Source interface {
	Get() Mode
}

// State is a concurrency-safe theme holder with change subscriptions.
type State struct {
	mu   sync.RWMutex
	mode Mode
	subs map[int]func(Mode)
	next int
}

// NewState returns a State starting at m; an invalid m starts at Dark.
func NewState(m Mode) *State {
	if _, err := ParseMode(string(m)); err != nil {
		m = Dark
	}
	return &State{mode: m, subs: make(map[int]func(Mode))}
}

// Get implements Source.
func (s *State) Get() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set switches to m and notifies subscribers when the mode changed.
func (s *State) Set(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	s.mu.Lock()
	if s.mode == m {
		s.mu.Unlock()
		return nil
	}
	s.mode = m
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
	return nil
}

// Toggle flips the mode, notifies subscribers and returns the new mode.
func (s *State) Toggle() Mode {
	s.mu.Lock()
	s.mode = s.mode.Opposite()
	m, fns := s.mode, s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
	return m
}

// OnChange registers fn to run after every change, in registration order.
// The returned cancel function unsubscribes; calling it twice is harmless.
func (s *State) OnChange(fn func(Mode)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot returns subscribers ordered by id. Caller holds mu.
func (s *State) snapshot() []func(Mode) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Mode), len(ids))
	for i, id := range ids {
		fns[i] = s.subs[id]
	}
	return fns
}
