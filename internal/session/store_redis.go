// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/internal/platform/constants"
)

// RedisStore keeps sessions in Redis so that every API replica sees them.
//
// Values are [navigation.Record] JSON. States are re-resolved against the
// catalog on every read.
type RedisStore struct {
	client  *redis.Client
	catalog navigation.Catalog
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client, catalog navigation.Catalog) *RedisStore {
	return &RedisStore{client: client, catalog: catalog}
}

// Key returns the Redis key of session id.
func Key(id string) string {
	return constants.RedisPrefixSession + id
}

/*
Create stores a new session with its TTL.

Returns:
  - error: apperr.Conflict if the id is already taken, or connectivity errors
*/
func (store *RedisStore) Create(ctx context.Context, id string, state navigation.State, ttl time.Duration) error {
	data, err := navigation.Marshal(state)
	if err != nil {
		return err
	}

	created, err := store.client.SetNX(ctx, Key(id), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}
	if !created {
		return apperr.Conflict("Session already exists")
	}
	return nil
}

/*
Get retrieves the state of a session.

Returns:
  - navigation.State: the decoded state
  - error: apperr.NotFound if the session is absent or expired
*/
func (store *RedisStore) Get(ctx context.Context, id string) (navigation.State, error) {
	data, err := store.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return navigation.Unmarshal(store.catalog, data)
}

/*
Update applies fn inside a WATCH/MULTI transaction.

A write by another replica between the read and the commit aborts the
transaction; it is retried up to [constants.SessionUpdateRetries] times.

Returns:
  - navigation.State: the committed state
  - error: fn's error, apperr.NotFound, or apperr.Conflict when retries run out
*/
func (store *RedisStore) Update(ctx context.Context, id string, ttl time.Duration, fn UpdateFunc) (navigation.State, error) {
	key := Key(id)

	var next navigation.State
	transaction := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return apperr.NotFound("Session")
			}
			return fmt.Errorf("redis_session_get_failed: %w", err)
		}

		current, err := navigation.Unmarshal(store.catalog, data)
		if err != nil {
			return err
		}

		next, err = fn(current)
		if err != nil {
			return err
		}

		encoded, err := navigation.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < constants.SessionUpdateRetries; attempt++ {
		err := store.client.Watch(ctx, transaction, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}

	return nil, apperr.Conflict("Session is being updated concurrently, retry the event")
}
