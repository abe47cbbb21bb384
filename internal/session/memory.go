package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is the in-process session backend used when Redis is not
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create mints a token bound to the user id.
func (s *MemoryStore) Create(_ context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token to its user id.
func (s *MemoryStore) Get(_ context.Context, token string) (int64, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.userID, true, nil
}

// Delete invalidates a token.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// DeleteExpired drops every expired token. Run periodically.
func (s *MemoryStore) DeleteExpired(_ context.Context) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
	return nil
}

// Len returns the number of live entries. Used in tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
