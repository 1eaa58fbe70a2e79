package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache. A zero TTL keeps entries until they are
// deleted. Every Delete or DeletePrefix bumps the generation, and a load that
// started under an older generation is returned to its callers but never
// stored.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	generation uint64
	flight     singleflight.Group
	now        func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && s.expired(current) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.generation++
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.generation++
	s.mu.Unlock()
}

// Len counts live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

// GetOrLoad returns the cached value for key or runs loader once per key,
// however many callers are waiting on it. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.currentGeneration()
	value, err, _ := s.flight.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// setIfGeneration drops the value when an invalidation ran after gen was read.
func (s *Store) setIfGeneration(key string, value any, gen uint64) bool {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.entries[key] = e
	return true
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}
