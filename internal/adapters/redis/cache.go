package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/observability"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key so several deployments can share
	// one Redis database.
	Prefix string
}

// Cache stores JSON values in Redis.
type Cache struct {
	c      *redis.Client
	prefix string
}

func New(o Options) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB}), o.Prefix)
}

func NewWithClient(c *redis.Client, prefix string) *Cache { return &Cache{c: c, prefix: prefix} }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

// Get decodes the value at key into dst. An entry that no longer decodes is
// dropped and reported as a miss.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	k := r.prefix + key
	v, err := r.c.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveCache("redis", "error")
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("dropping undecodable cache entry")
		observability.ObserveCache("redis", "corrupt")
		_ = r.c.Del(ctx, k).Err()
		return false, nil
	}
	observability.ObserveCache("redis", "hit")
	return true, nil
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, r.prefix+key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, r.prefix+key).Err()
}
