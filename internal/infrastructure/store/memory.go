package store

import (
	"context"
	"sync"
	"time"

	"honeytrap-lab/internal/domain/models"
)

// MemoryStore keeps session records in process memory. Records live for the
// process lifetime; nothing is ever evicted. This is the default backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	locks    *keyedMutex
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		locks:    newKeyedMutex(),
	}
}

// Update runs fn against a working copy of the record for sessionID,
// creating it first if absent, and publishes the copy only when fn succeeds.
// An error from fn leaves the stored record untouched. Updates for the same
// session ID are serialized by a per-key lock.
func (m *MemoryStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.Session, error) {
	l := m.locks.get(sessionID)
	l.Lock()
	defer l.Unlock()

	m.mu.RLock()
	cur := m.sessions[sessionID]
	m.mu.RUnlock()

	s := cloneSession(cur)
	if s == nil {
		s = models.NewSession(sessionID)
	}

	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now().UTC()

	m.mu.Lock()
	m.sessions[sessionID] = s
	m.mu.Unlock()

	return cloneSession(s), nil
}

// Get returns a snapshot of the record for sessionID. Stored records are
// replaced, never mutated in place, so a read lock is enough.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(s), nil
}

// List returns snapshots of all records, newest first.
func (m *MemoryStore) List(ctx context.Context) ([]*models.Session, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	out := make([]*models.Session, 0, len(ids))
	for _, id := range ids {
		s, err := m.Get(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	sortNewestFirst(out)
	return out, nil
}
