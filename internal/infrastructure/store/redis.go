package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/infrastructure/cache"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps session records as JSON in Redis so they survive process
// restarts. Write serialization is an in-process per-key lock: the service
// runs single-instance (multi-instance coordination is out of scope), so the
// lock fully orders writers for a session.
type RedisStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
	locks *keyedMutex
}

// NewRedis creates a Redis-backed session store. A non-zero ttl bounds how
// long idle records linger in the external store.
func NewRedis(c *cache.RedisCache, ttl time.Duration) *RedisStore {
	return &RedisStore{
		cache: c,
		ttl:   ttl,
		locks: newKeyedMutex(),
	}
}

// Update loads the record for sessionID (creating it if absent), runs fn and
// writes the result back, all under the per-key lock.
func (r *RedisStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.Session, error) {
	l := r.locks.get(sessionID)
	l.Lock()
	defer l.Unlock()

	s, err := r.load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		s = models.NewSession(sessionID)
	}

	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now().UTC()

	if err := r.cache.SetJSON(ctx, sessionKeyPrefix+sessionID, s, r.ttl); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return s, nil
}

// Get returns the record for sessionID.
func (r *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	l := r.locks.get(sessionID)
	l.Lock()
	defer l.Unlock()
	return r.load(ctx, sessionID)
}

// List returns all stored records, newest first.
func (r *RedisStore) List(ctx context.Context) ([]*models.Session, error) {
	keys, err := r.cache.ScanKeys(ctx, sessionKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	out := make([]*models.Session, 0, len(keys))
	for _, k := range keys {
		id := strings.TrimPrefix(k, sessionKeyPrefix)
		s, err := r.Get(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *RedisStore) load(ctx context.Context, sessionID string) (*models.Session, error) {
	var s models.Session
	if err := r.cache.GetJSON(ctx, sessionKeyPrefix+sessionID, &s); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &s, nil
}
