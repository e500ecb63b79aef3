package server

import (
	"fmt"
	"sync"

	"github.com/alkime/author/internal/session"
	"github.com/google/uuid"
)

// chatSession is one widget-driven drafting session. The mutex serializes
// HTTP requests for the same session; within a session turns are strictly
// sequential.
type chatSession struct {
	id   string
	mu   sync.Mutex
	ctrl *session.Controller
}

// sessionStore holds the active sessions keyed by ID. Sessions share no
// state with each other.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*chatSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*chatSession)}
}

func (s *sessionStore) create(ctrl *session.Controller) *chatSession {
	cs := &chatSession{
		id:   uuid.NewString(),
		ctrl: ctrl,
	}

	s.mu.Lock()
	s.sessions[cs.id] = cs
	s.mu.Unlock()

	return cs
}

func (s *sessionStore) get(id string) (*chatSession, error) {
	s.mu.RLock()
	cs, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}

	return cs, nil
}

func (s *sessionStore) remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
