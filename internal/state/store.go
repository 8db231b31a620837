package state

import (
	"slices"
	"sync"
	"time"

	"github.com/five82/holocron/internal/swapi"
)

// Phase is the position of a load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// LoadState is what the UI renders from.
type LoadState struct {
	Phase     Phase
	IsLoading bool
	HasError  bool
	Species   []swapi.Species
	Err       error
	CycleID   string
	StartedAt time.Time
	SettledAt time.Time
}

// Settled reports whether the current cycle has finished.
func (s LoadState) Settled() bool {
	return s.Phase == PhaseLoaded || s.Phase == PhaseFailed
}

// Action is an event applied by Reduce.
type Action interface {
	isAction()
}

// Start begins a load cycle.
type Start struct {
	CycleID string
}

// Succeed settles the cycle with the loaded species.
type Succeed struct {
	Species []swapi.Species
}

// Fail settles the cycle with an error.
type Fail struct {
	Err error
}

func (Start) isAction()   {}
func (Succeed) isAction() {}
func (Fail) isAction()    {}

// Reduce applies a to s and returns the next state. Settling events outside
// PhaseLoading are ignored.
func Reduce(s LoadState, a Action) LoadState {
	switch a := a.(type) {
	case Start:
		s.Phase = PhaseLoading
		s.IsLoading = true
		s.HasError = false
		s.Err = nil
		s.CycleID = a.CycleID
	case Succeed:
		if s.Phase != PhaseLoading {
			return s
		}
		s.Phase = PhaseLoaded
		s.IsLoading = false
		s.Species = cloneSpecies(a.Species)
	case Fail:
		if s.Phase != PhaseLoading {
			return s
		}
		s.Phase = PhaseFailed
		s.IsLoading = false
		s.HasError = true
		s.Err = a.Err
	}
	return s
}

// Store serializes Dispatch calls and hands out copies of the state.
type Store struct {
	mu        sync.RWMutex
	state     LoadState
	listeners []func(LoadState)
	now       func() time.Time
}

// Dispatch reduces a into the stored state, notifies subscribers, and returns
// a copy of the new state.
func (s *Store) Dispatch(a Action) LoadState {
	s.mu.Lock()
	prev := s.state.Phase
	next := Reduce(s.state, a)
	if next.Phase != prev || next.CycleID != s.state.CycleID {
		ts := s.clock()
		switch next.Phase {
		case PhaseLoading:
			next.StartedAt = ts
			next.SettledAt = time.Time{}
		case PhaseLoaded, PhaseFailed:
			next.SettledAt = ts
		}
	}
	s.state = next
	snap := s.snapshotLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(copyState(snap))
	}
	return snap
}

// Subscribe registers fn to receive a copy of every dispatched state. fn runs
// on the dispatching goroutine after the lock is released.
func (s *Store) Subscribe(fn func(LoadState)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() LoadState {
	return copyState(s.state)
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func copyState(st LoadState) LoadState {
	st.Species = cloneSpecies(st.Species)
	return st
}

func cloneSpecies(list []swapi.Species) []swapi.Species {
	if len(list) == 0 {
		return nil
	}
	dup := make([]swapi.Species, len(list))
	copy(dup, list)
	for i := range dup {
		dup[i].Films = slices.Clone(dup[i].Films)
	}
	return dup
}
