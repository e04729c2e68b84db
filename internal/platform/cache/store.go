// Package cache holds the in-process read-through store used by the game and
// roster repository decorators.
package cache

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// Loader produces the value for a missing key.
type Loader func(context.Context) (any, error)

type slot struct {
	value    any
	deadline time.Time
}

func (s slot) live(now time.Time) bool {
	return s.deadline.IsZero() || now.Before(s.deadline)
}

// Store is a TTL map keyed by string. Concurrent misses on one key share a
// single load. A non-positive ttl keeps entries until they are deleted.
type Store struct {
	clock clockwork.Clock
	ttl   time.Duration
	loads singleflight.Group

	mu    sync.RWMutex
	slots map[string]slot
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, nil)
}

func NewStoreWithClock(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{clock: clock, ttl: ttl, slots: map[string]slot{}}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	found, ok := s.slots[key]
	s.mu.RUnlock()
	switch {
	case !ok:
		return nil, false
	case found.live(s.clock.Now()):
		return found.value, true
	}

	s.mu.Lock()
	if current, still := s.slots[key]; still && !current.live(s.clock.Now()) {
		delete(s.slots, key)
	}
	s.mu.Unlock()
	return nil, false
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	next := slot{value: value}
	if s.ttl > 0 {
		next.deadline = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.slots[key] = next
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix. An empty prefix is a no-op.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	s.mu.Lock()
	maps.DeleteFunc(s.slots, func(key string, _ slot) bool {
		return strings.HasPrefix(key, prefix)
	})
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// GetOrLoad reads through the store. Failed loads are not cached; an empty key
// bypasses the store entirely.
func (s *Store) GetOrLoad(ctx context.Context, key string, load Loader) (any, error) {
	if load == nil {
		return nil, errors.New("cache: loader is required")
	}
	if key == "" {
		return load(ctx)
	}
	if hit, ok := s.Get(ctx, key); ok {
		return hit, nil
	}

	value, err, _ := s.loads.Do(key, func() (any, error) {
		if hit, ok := s.Get(ctx, key); ok {
			return hit, nil
		}
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	return value, err
}
