// Package store provides the keyed conversation-record store behind the
// conversation engine. Mutation goes through Update, which serializes all
// writes for one session ID; records for different sessions are fully
// independent.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"honeytrap-lab/internal/domain/models"
)

// ErrNotFound is returned when a session ID has no record.
var ErrNotFound = errors.New("session not found")

// UpdateFunc mutates a session record inside the store's per-key critical
// section. Returning an error aborts the update without persisting.
type UpdateFunc func(s *models.Session) error

// Store is the abstract keyed session store. Update creates the record
// lazily on first use and returns a snapshot of the record after mutation.
type Store interface {
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	List(ctx context.Context) ([]*models.Session, error)
}

// keyedMutex hands out one mutex per key, serializing writers for the same
// session while leaving other sessions uncontended.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// sortNewestFirst orders sessions by most recent activity.
func sortNewestFirst(sessions []*models.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
}

// cloneSession returns a deep copy so callers never share slices with the
// stored record.
func cloneSession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	c := *s
	c.MatchedKeywords = append([]string(nil), s.MatchedKeywords...)
	c.Intel = models.Intelligence{
		BankAccounts:  append([]string(nil), s.Intel.BankAccounts...),
		UPIIDs:        append([]string(nil), s.Intel.UPIIDs...),
		PhishingLinks: append([]string(nil), s.Intel.PhishingLinks...),
		PhoneNumbers:  append([]string(nil), s.Intel.PhoneNumbers...),
	}
	return &c
}
