package storage

import (
	"time"

	"github.com/crayonbox/coloringbook/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL is how long an idle session survives before the
	// janitor evicts it.
	DefaultTTL = 2 * time.Hour

	cleanupInterval = 10 * time.Minute
)

type SessionStore struct {
	sessions *gocache.Cache
}

func New() *SessionStore {
	return NewWithTTL(DefaultTTL)
}

func NewWithTTL(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: gocache.New(ttl, cleanupInterval),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.GenerationSession, bool) {
	v, exists := s.sessions.Get(sessionID)
	if !exists {
		return nil, false
	}
	session, ok := v.(*models.GenerationSession)
	if !ok {
		return nil, false
	}
	return session, true
}

// Set stores the session and resets its expiration clock.
func (s *SessionStore) Set(sessionID string, session *models.GenerationSession) {
	s.sessions.Set(sessionID, session, gocache.DefaultExpiration)
}

func (s *SessionStore) GetAll() map[string]*models.GenerationSession {
	items := s.sessions.Items()
	result := make(map[string]*models.GenerationSession, len(items))
	for k, v := range items {
		if session, ok := v.Object.(*models.GenerationSession); ok {
			result[k] = session
		}
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.sessions.Delete(sessionID)
}
