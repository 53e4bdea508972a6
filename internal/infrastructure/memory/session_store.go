// Package memory holds in-process implementations of the store ports, used
// for single-instance deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

// SessionStore keeps sessions in a mutex-guarded map.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Get(_ context.Context, sid string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionid.Digest(sid)], nil
}

func (s *SessionStore) Set(_ context.Context, sid string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionid.Digest(sid)] = sess
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionid.Digest(sid))
	return nil
}

func (s *SessionStore) Ping(context.Context) error { return nil }
