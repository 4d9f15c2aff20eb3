// Package session keeps mounted pages in memory, one per browser session.
// Nothing is persisted: an unmounted or expired page is gone.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haguru/signup/internal/interfaces"
	"github.com/haguru/signup/pkg/zerolog"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Store holds values created by a mount function, keyed by random session IDs.
type Store[T any] struct {
	mount  func() T
	ttl    time.Duration
	now    func() time.Time
	logger interfaces.Logger

	mu      sync.Mutex
	entries map[string]*entry[T]
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	now    func() time.Time
	logger interfaces.Logger
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		o.now = now
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// NewStore creates a Store that calls mount for every new session and
// discards sessions idle for longer than ttl.
func NewStore[T any](mount func() T, ttl time.Duration, opts ...Option) *Store[T] {
	o := storeOptions{now: time.Now, logger: zerolog.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		mount:   mount,
		ttl:     ttl,
		now:     o.now,
		logger:  o.logger,
		entries: make(map[string]*entry[T]),
	}
}

// Mount creates a fresh value under a new session ID.
func (s *Store[T]) Mount() (string, T) {
	id := uuid.NewString()
	value := s.mount()

	s.mu.Lock()
	s.entries[id] = &entry[T]{value: value, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug("Session mounted", "session", id)
	return id, value
}

// Get returns the value for id and marks the session as active.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastSeen = s.now()
	return e.value, true
}

// GetOrMount returns the value for id, mounting a new session when id is unknown.
// The returned ID is the one the caller should use from now on.
func (s *Store[T]) GetOrMount(id string) (string, T) {
	if value, ok := s.Get(id); ok {
		return id, value
	}
	return s.Mount()
}

// Unmount discards the session. Unknown IDs are ignored.
func (s *Store[T]) Unmount(id string) {
	s.mu.Lock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if ok {
		s.logger.Debug("Session unmounted", "session", id)
	}
}

// Len returns the number of mounted sessions.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep discards every session idle for longer than the TTL and returns how many went.
func (s *Store[T]) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("Expired sessions swept", "removed", removed)
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
