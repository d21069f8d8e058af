package core

import (
	"context"
	"sync"
)

// State tracks in-flight transformations. Every request gets a sequence
// number; results are delivered in sequence order so a slow, stale, or
// cancelled request can never clobber a newer one.
type State struct {
	mu        sync.Mutex
	nextSeq   uint64
	active    map[uint64]context.CancelFunc
	delivered uint64
}

func NewState() *State {
	return &State{active: make(map[uint64]context.CancelFunc)}
}

// Begin allocates the next sequence number and registers the request's
// cancel function.
func (s *State) Begin(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.active[s.nextSeq] = cancel
	return s.nextSeq
}

// Finish drops the cancel registration once the request has completed.
func (s *State) Finish(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, seq)
}

// Deliver reports whether seq's result may be shown. A result at or below
// the last delivered sequence is stale and must be dropped.
func (s *State) Deliver(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.delivered {
		return false
	}
	s.delivered = seq
	return true
}

// CancelAll aborts every in-flight request.
func (s *State) CancelAll() {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.active))
	for _, c := range s.active {
		cancels = append(cancels, c)
	}
	s.mu.Unlock()

	for _, c := range cancels {
		c()
	}
}

// Busy reports whether any request is still running.
func (s *State) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}
