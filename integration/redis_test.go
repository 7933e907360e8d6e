package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/PabloPavan/snipdeck/internal/ratelimit"
	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBackedComponents(t *testing.T) {
	client := newRedis(t)
	ctx := context.Background()

	t.Run("snippet cache", func(t *testing.T) {
		cache := snippets.NewRedisCache(client, "test:cache:")
		title := "cached"
		in := &snippets.Snippet{
			Slug:     "abc",
			Title:    &title,
			Language: snippets.LanguageJSON,
			Versions: []snippets.Version{{VersionNumber: 1, Content: "{}"}},
		}

		_, ok, err := cache.GetBySlug(ctx, "abc")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, cache.SetBySlug(ctx, in, time.Minute))
		got, ok, err := cache.GetBySlug(ctx, "abc")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "cached", got.DisplayTitle())
		assert.Len(t, got.Versions, 1)

		require.NoError(t, client.Set(ctx, "test:cache:snippet:bad", "not json", time.Minute).Err())
		_, ok, err = cache.GetBySlug(ctx, "bad")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("session notices", func(t *testing.T) {
		mgr := &session.Manager{Store: session.NewRedisStore(client, "test:session:"), TTL: time.Minute}
		sess, err := mgr.Create(ctx)
		require.NoError(t, err)

		require.NoError(t, mgr.Push(ctx, sess.ID, session.Notice{Level: session.LevelSuccess, Message: "done"}))
		notices, err := mgr.Pop(ctx, sess.ID)
		require.NoError(t, err)
		require.Len(t, notices, 1)
		assert.Equal(t, "done", notices[0].Message)

		notices, err = mgr.Pop(ctx, sess.ID)
		require.NoError(t, err)
		assert.Empty(t, notices)
	})

	t.Run("create limiter", func(t *testing.T) {
		limiter := &ratelimit.Limiter{Client: client, Prefix: "test:rl:", Limit: 2, Window: time.Minute}
		key := ratelimit.Key("create", "10.0.0.1")

		for i := 0; i < 2; i++ {
			ok, _, err := limiter.Allow(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, retry, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Greater(t, retry, time.Duration(0))
	})
}
