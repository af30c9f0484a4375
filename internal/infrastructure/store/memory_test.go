package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"honeytrap-lab/internal/domain/models"
)

func TestMemoryUpdateCreatesLazily(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s, err := m.Update(ctx, "s1", func(s *models.Session) error {
		s.TurnCount++
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.ID != "s1" || s.TurnCount != 1 {
		t.Errorf("session = %+v, want fresh record with one turn", s)
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryUpdateErrorDiscardsMutation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Update(ctx, "s1", func(s *models.Session) error {
		s.TurnCount = 1
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	boom := errors.New("boom")
	if _, err := m.Update(ctx, "s1", func(s *models.Session) error {
		s.TurnCount = 42
		s.ScamDetected = true
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Update err = %v, want boom", err)
	}

	s, err := m.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.TurnCount != 1 || s.ScamDetected {
		t.Errorf("aborted update persisted: turnCount=%d scamDetected=%v", s.TurnCount, s.ScamDetected)
	}
}

func TestMemoryUpdateErrorDoesNotCreateRecord(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	boom := errors.New("boom")
	if _, err := m.Update(ctx, "fresh", func(s *models.Session) error {
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Update err = %v, want boom", err)
	}

	if _, err := m.Get(ctx, "fresh"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound after aborted create", err)
	}
}

func TestMemorySnapshotIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Update(ctx, "s1", func(s *models.Session) error {
		s.MatchedKeywords = []string{"upi"}
		return nil
	})

	snap, _ := m.Get(ctx, "s1")
	snap.MatchedKeywords[0] = "mutated"
	snap.TurnCount = 99

	fresh, _ := m.Get(ctx, "s1")
	if fresh.MatchedKeywords[0] != "upi" || fresh.TurnCount != 0 {
		t.Errorf("stored record mutated through snapshot: %+v", fresh)
	}
}

func TestMemoryConcurrentUpdatesSameKey(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update(ctx, "s1", func(s *models.Session) error {
				s.TurnCount++
				return nil
			})
		}()
	}
	wg.Wait()

	s, err := m.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.TurnCount != n {
		t.Errorf("turnCount = %d, want %d (lost updates)", s.TurnCount, n)
	}
}

func TestMemoryList(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		m.Update(ctx, id, func(s *models.Session) error { return nil })
	}

	all, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List returned %d records, want 3", len(all))
	}
}
