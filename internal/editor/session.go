package editor

import (
	"context"
	"errors"
	"time"
)

// SessionState tracks where a suggestion request is in its lifecycle.
type SessionState int

const (
	StateIdle SessionState = iota
	StatePending
	StateCompleted
	StateCancelled
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Suggestion is one command returned by a backend, tagged with the input
// line it was requested against.
type Suggestion struct {
	Value    string
	Snapshot string
}

// Session owns the lifecycle of one suggestion request: at most one request
// is in flight at a time, and a new trigger supersedes any prior one. All
// mutation happens on the editor loop; the background call reports back only
// through Resolve with the ID handed out by Begin.
type Session struct {
	id         int
	state      SessionState
	snapshot   string
	suggestion *Suggestion
	startedAt  time.Time
	cancel     context.CancelFunc
}

func (s *Session) ID() int                 { return s.id }
func (s *Session) State() SessionState     { return s.state }
func (s *Session) Suggestion() *Suggestion { return s.suggestion }
func (s *Session) StartedAt() time.Time    { return s.startedAt }

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.state == StatePending
}

// Begin starts a new request against the given snapshot, superseding any
// request still in flight. The returned ID must accompany the eventual
// result so stale results can be told apart from current ones.
func (s *Session) Begin(snapshot string, cancel context.CancelFunc, now time.Time) int {
	s.abandon()
	s.id++
	s.state = StatePending
	s.snapshot = snapshot
	s.suggestion = nil
	s.startedAt = now
	s.cancel = cancel
	return s.id
}

// Cancel aborts the in-flight request, if any. The background call is
// signalled best-effort; its eventual result is dropped by Resolve.
func (s *Session) Cancel() {
	if s.state != StatePending {
		return
	}
	s.abandon()
	s.state = StateCancelled
}

// Resolve applies the outcome of the request identified by id. Results from
// superseded or cancelled requests are rejected. A nil err carries a
// non-empty value; empty results arrive as an error from the provider layer.
// Reports whether the result was accepted.
func (s *Session) Resolve(id int, value string, err error) bool {
	if id != s.id || s.state != StatePending {
		return false
	}
	s.abandon()
	switch {
	case errors.Is(err, context.Canceled):
		s.state = StateCancelled
	case err != nil:
		s.state = StateFailed
	default:
		s.state = StateCompleted
		s.suggestion = &Suggestion{Value: value, Snapshot: s.snapshot}
	}
	return true
}

// Discard drops the stored suggestion without touching the session state.
// Used when the ghost is cleared by edits, cursor motion, accept or submit.
func (s *Session) Discard() {
	s.suggestion = nil
}

func (s *Session) abandon() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
