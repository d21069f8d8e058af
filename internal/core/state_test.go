package core

import (
	"context"
	"testing"
)

func TestStateSequencesAreMonotonic(t *testing.T) {
	s := NewState()
	a := s.Begin(func() {})
	b := s.Begin(func() {})
	if b <= a {
		t.Errorf("sequences not increasing: %d then %d", a, b)
	}
}

func TestStateDeliverGuard(t *testing.T) {
	s := NewState()
	first := s.Begin(func() {})
	second := s.Begin(func() {})

	if !s.Deliver(second) {
		t.Fatal("newest result must deliver")
	}
	if s.Deliver(first) {
		t.Error("stale result delivered after a newer one")
	}
	if s.Deliver(second) {
		t.Error("same sequence delivered twice")
	}
}

func TestStateCancelAll(t *testing.T) {
	s := NewState()
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	s.Begin(cancel1)
	s.Begin(cancel2)

	if !s.Busy() {
		t.Fatal("state should be busy with registered requests")
	}
	s.CancelAll()

	if ctx1.Err() == nil || ctx2.Err() == nil {
		t.Error("CancelAll left contexts alive")
	}
}

func TestStateFinish(t *testing.T) {
	s := NewState()
	seq := s.Begin(func() {})
	s.Finish(seq)
	if s.Busy() {
		t.Error("still busy after Finish")
	}
}
