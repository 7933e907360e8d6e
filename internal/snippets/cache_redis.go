package snippets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "snipdeck:cache:"
	}
	return &RedisCache{client: client, prefix: p}
}

func (c *RedisCache) key(slug string) string {
	return c.prefix + "snippet:" + slug
}

func (c *RedisCache) GetBySlug(ctx context.Context, slug string) (*Snippet, bool, error) {
	val, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var s Snippet
	if err := json.Unmarshal(val, &s); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = c.client.Del(ctx, c.key(slug)).Err()
		return nil, false, nil
	}
	if len(s.Versions) == 0 {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *RedisCache) SetBySlug(ctx context.Context, s *Snippet, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(s.Slug), payload, ttl).Err()
}

func (c *RedisCache) DeleteBySlug(ctx context.Context, slug string) error {
	return c.client.Del(ctx, c.key(slug)).Err()
}
