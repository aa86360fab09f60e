// Package session implements the Online Session: a Machine wrapped behind a
// mutual-exclusion guard, exposing has_next/get_next with serialized step
// requests. The guard is a sync.Mutex, which does not grant the lock in
// arrival order. It is the engine's only concurrency boundary.
package session

import (
	"sync"

	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/machine"
)

// Session wraps a *machine.Machine so that concurrent callers observe
// serial, one-step-per-call semantics.
type Session struct {
	mu sync.Mutex
	m  *machine.Machine
}

// New wraps m. The caller is expected to have already loaded models and
// reset the Machine (or to call Reset through the Session) before the first
// HasNext/GetNext call.
func New(m *machine.Machine) *Session {
	return &Session{m: m}
}

// Reset resets the wrapped Machine under the session lock.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Reset()
}

// HasNext reports whether the Machine is Running and not yet fulfilled.
func (s *Session) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Status() == machine.StatusRunning && !s.m.Fulfilled()
}

// GetNext performs exactly one Step call. Any engine error is wrapped as a
// TransportError for the HTTP layer (internal/session's http.go) to
// translate into a status code, with no change to Machine status beyond
// what the underlying step did.
func (s *Session) GetNext() (*domain.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.m.Status() != machine.StatusRunning || s.m.Fulfilled() {
		return nil, domain.NewEngineError(domain.ErrTransport, "no next step available", nil)
	}

	step, err := s.m.Step()
	if err != nil {
		return step, domain.NewEngineError(domain.ErrTransport, "step failed", err)
	}
	return step, nil
}

// Machine exposes the wrapped Machine for read-only introspection (status,
// run id) by the HTTP layer. Mutating calls must go through HasNext/GetNext/
// Reset to stay serialized.
func (s *Session) Machine() *machine.Machine { return s.m }
