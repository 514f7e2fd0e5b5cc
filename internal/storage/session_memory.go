package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/deutsch-quiz/internal/session"
)

type memoryEntry struct {
	data      session.Data
	expiresAt time.Time
}

const defaultSweepThreshold = 1024

// MemorySessionStore provides in-memory storage for sessions by session ID.
// Expired entries are dropped when they are looked up, and all of them are
// swept out when a save finds the map at the sweep threshold.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time

	sweepThreshold int
}

// NewMemorySessionStore creates a new MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions:       make(map[string]memoryEntry),
		now:            time.Now,
		sweepThreshold: defaultSweepThreshold,
	}
}

// Load retrieves the session data for a given session ID.
func (s *MemorySessionStore) Load(_ context.Context, id string) (*session.Data, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, session.ErrSessionNotFound
	}

	if !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, session.ErrSessionNotFound
	}

	data := entry.data
	return &data, nil
}

// Save stores the session data for a given session ID.
func (s *MemorySessionStore) Save(_ context.Context, id string, data *session.Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.sessions) >= s.sweepThreshold {
		s.sweepLocked(now)
	}

	s.sessions[id] = memoryEntry{
		data:      *data,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// sweepLocked removes expired entries and moves the threshold so that a map
// full of live sessions is not swept on every save. s.mu must be held.
func (s *MemorySessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}

	s.sweepThreshold = max(defaultSweepThreshold, 2*len(s.sessions))
}

// Delete removes the session with the given ID.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
