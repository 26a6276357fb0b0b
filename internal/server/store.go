package server

import (
	"strings"
	"sync"
	"time"

	"github.com/prakharsingh-74/meeting-summarizer/internal/session"
)

// sessionStore holds the live workflows, one controller per session id.
// Nothing is persisted; a restart discards every session.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Controller
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session.Controller)}
}

func (s *sessionStore) set(id string, ctrl *session.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = ctrl
}

func (s *sessionStore) get(id string) (*session.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.sessions[id]
	return ctrl, ok
}

func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func newSessionID() string {
	return strings.ReplaceAll(time.Now().Format("20060102T150405.000000000"), ".", "")
}
