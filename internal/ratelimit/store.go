package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewStore returns a Redis-backed limiter store, or an in-process one when rdb is nil.
func NewStore(rdb *redis.Client, prefix string) (limiter.Store, error) {
	opts := limiter.StoreOptions{Prefix: prefix, CleanUpInterval: time.Minute}
	if rdb == nil {
		return memory.NewStoreWithOptions(opts), nil
	}
	return limiterredis.NewStoreWithOptions(rdb, opts)
}

// FixedWindow adapts a ulule limiter store to Limiter.
type FixedWindow struct {
	Store limiter.Store
}

// Allow implements Limiter.
func (f FixedWindow) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if f.Store == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}
	l := limiter.New(f.Store, limiter.Rate{Period: window, Limit: int64(max)})
	lctx, err := l.Get(ctx, key)
	if err != nil {
		return false, 0, time.Now().Add(window), err
	}
	return !lctx.Reached, int(lctx.Remaining), time.Unix(lctx.Reset, 0), nil
}
