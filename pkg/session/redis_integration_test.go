//go:build integration

package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/redis"
	"github.com/dmitrymomot/afoslt/pkg/session"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client := newTestRedisClient(t)
	store := session.NewRedisStore(client, session.WithPrefix("afoslt-test:"+t.Name()))

	s := session.New(time.Minute)
	s.Set("name", "ann")
	s.Set("visits", 3)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "ann", session.ValueOr(got, "name", ""))
	require.InDelta(t, 3.0, session.ValueOr(got, "visits", 0.0), 0)

	ttl, err := client.TTL(ctx, "afoslt-test:"+t.Name()+":"+s.ID).Result()
	require.NoError(t, err)
	require.Positive(t, ttl)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)

	expired := session.New(-time.Second)
	require.NoError(t, store.Save(ctx, expired))
	_, err = store.Get(ctx, expired.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}
