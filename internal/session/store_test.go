// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/navigation"
	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/internal/session"
)

var catalog = atlas.Embedded()

/*
testStoreContract runs the behavior every [session.Store] must share.
*/
func testStoreContract(t *testing.T, store session.Store) {
	ctx := context.Background()
	ttl := time.Minute

	t.Run("create_and_get", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Create(ctx, id, navigation.Initial(), ttl))

		state, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, navigation.MapIdle{}, state)
	})

	t.Run("duplicate_create", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Create(ctx, id, navigation.Initial(), ttl))

		err := store.Create(ctx, id, navigation.Initial(), ttl)
		assert.True(t, apperr.HasCode(err, "CONFLICT"))
	})

	t.Run("unknown_session", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+uuid.NewString())
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

		_, err = store.Update(ctx, "missing-"+uuid.NewString(), ttl, func(current navigation.State) (navigation.State, error) {
			return current, nil
		})
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	})

	t.Run("update", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Create(ctx, id, navigation.Initial(), ttl))

		next, err := store.Update(ctx, id, ttl, func(current navigation.State) (navigation.State, error) {
			return navigation.Resume(catalog, current).Apply(navigation.SelectLocation{ID: "kunlun"})
		})
		require.NoError(t, err)
		assert.Equal(t, navigation.NameMapLocationSelected, next.Name())

		stored, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, next, stored)
	})

	t.Run("aborted_update", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, store.Create(ctx, id, navigation.Initial(), ttl))

		boom := errors.New("boom")
		_, err := store.Update(ctx, id, ttl, func(navigation.State) (navigation.State, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = store.Update(ctx, id, ttl, func(current navigation.State) (navigation.State, error) {
			return navigation.Resume(catalog, current).Apply(navigation.Back{})
		})
		assert.ErrorIs(t, err, navigation.ErrIgnored)

		stored, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, navigation.MapIdle{}, stored)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	testStoreContract(t, session.NewMemoryStore())
}

/*
TestRedisStore_Contract runs against a live Redis when SHANHAI_TEST_REDIS_URL
is set, e.g. redis://localhost:6379/15.
*/
func TestRedisStore_Contract(t *testing.T) {
	url := os.Getenv("SHANHAI_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SHANHAI_TEST_REDIS_URL not set")
	}

	options, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	testStoreContract(t, session.NewRedisStore(client, catalog))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := session.NewMemoryStore(session.WithClock(func() time.Time { return now }))

	require.NoError(t, store.Create(ctx, "a", navigation.Initial(), time.Minute))
	require.NoError(t, store.Create(ctx, "b", navigation.Initial(), time.Hour))

	now = now.Add(30 * time.Second)
	_, err := store.Update(ctx, "a", time.Minute, func(current navigation.State) (navigation.State, error) {
		return current, nil
	})
	require.NoError(t, err)

	// The update refreshed "a", so it survives past its original expiry.
	now = now.Add(45 * time.Second)
	_, err = store.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "a")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	// An expired id can be reused.
	require.NoError(t, store.Create(ctx, "a", navigation.Initial(), time.Minute))

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 2, store.Sweep())
	assert.Zero(t, store.Len())
}

func TestMemoryStore_SerializesUpdates(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Create(ctx, "shared", navigation.Initial(), time.Minute))

	var (
		wg      sync.WaitGroup
		applied int
	)
	for worker := 0; worker < 16; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := store.Update(ctx, "shared", time.Minute, func(current navigation.State) (navigation.State, error) {
					applied++
					return current, nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16*50, applied)
}

func TestMemoryStore_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := session.NewMemoryStore()
	require.NoError(t, store.Create(ctx, "short", navigation.Initial(), time.Millisecond))

	done := make(chan struct{})
	go func() {
		store.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
