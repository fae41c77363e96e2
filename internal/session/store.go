// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session keeps one navigation state per visitor and applies events to it.

A visitor creates a session, receives a signed token naming it, and then sends
events with that token. The state lives server-side in a [Store]; the token
only carries the session id.

# Concurrency

Each [Store] serializes updates of the same session: the memory store under
its mutex, the Redis store with optimistic WATCH/MULTI transactions.
*/
package session

import (
	"context"
	"time"

	"github.com/taibuivan/shanhai/internal/navigation"
)

// UpdateFunc computes the next state from the stored one. Returning an error
// aborts the update and leaves the stored state untouched.
type UpdateFunc func(current navigation.State) (navigation.State, error)

// Store persists navigation states with an idle expiry.
//
// A missing or expired session is reported as an apperr NOT_FOUND error.
type Store interface {
	// Create stores state under a new id. An existing live id is a CONFLICT.
	Create(ctx context.Context, id string, state navigation.State, ttl time.Duration) error

	// Get returns the current state.
	Get(ctx context.Context, id string) (navigation.State, error)

	// Update applies fn atomically and refreshes the expiry.
	Update(ctx context.Context, id string, ttl time.Duration, fn UpdateFunc) (navigation.State, error)
}
