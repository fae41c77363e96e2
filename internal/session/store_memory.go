// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
)

type memoryEntry struct {
	state     navigation.State
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It suits a single replica.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// MemoryOption configures a [MemoryStore].
type MemoryOption func(*MemoryStore)

// WithClock replaces the store's time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(store *MemoryStore) { store.now = now }
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (store *MemoryStore) Create(_ context.Context, id string, state navigation.State, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.live(id); ok {
		return apperr.Conflict("Session already exists")
	}
	store.sessions[id] = memoryEntry{state: state, expiresAt: store.now().Add(ttl)}
	return nil
}

func (store *MemoryStore) Get(_ context.Context, id string) (navigation.State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.live(id)
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return entry.state, nil
}

func (store *MemoryStore) Update(_ context.Context, id string, ttl time.Duration, fn UpdateFunc) (navigation.State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.live(id)
	if !ok {
		return nil, apperr.NotFound("Session")
	}

	next, err := fn(entry.state)
	if err != nil {
		return nil, err
	}

	store.sessions[id] = memoryEntry{state: next, expiresAt: store.now().Add(ttl)}
	return next, nil
}

// Len returns the number of stored sessions, expired ones included.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

// Sweep deletes expired sessions and returns how many were removed.
func (store *MemoryStore) Sweep() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	removed := 0
	now := store.now()
	for id, entry := range store.sessions {
		if !now.Before(entry.expiresAt) {
			delete(store.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (store *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			store.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// live returns the unexpired entry for id, dropping it if expired.
// The caller must hold mu.
func (store *MemoryStore) live(id string) (memoryEntry, bool) {
	entry, ok := store.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !store.now().Before(entry.expiresAt) {
		delete(store.sessions, id)
		return memoryEntry{}, false
	}
	return entry, true
}
