package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unknownGeneration never matches a stored generation, so a Set made with it
// is always dropped.
const unknownGeneration int64 = -1

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
// A missing generation key counts as 0.
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// RedisListingCache shares listing views between instances. Backend errors are
// logged and treated as a miss (Get) or dropped (Set, Invalidate).
type RedisListingCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

func NewRedisListingCache(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *RedisListingCache {
	if keyPrefix == "" {
		keyPrefix = "listing:"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisListingCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger.Named("listing_cache"),
	}
}

func (c *RedisListingCache) key(view string) string {
	return c.keyPrefix + view
}

func (c *RedisListingCache) genKey(view string) string {
	return c.keyPrefix + view + ":gen"
}

func (c *RedisListingCache) Get(ctx context.Context, view string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, c.key(view)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("listing cache read failed", zap.String("view", view), zap.Error(err))
		return nil, false
	}
	return payload, true
}

func (c *RedisListingCache) Generation(ctx context.Context, view string) int64 {
	gen, err := c.client.Get(ctx, c.genKey(view)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		c.logger.Warn("listing cache generation read failed", zap.String("view", view), zap.Error(err))
		return unknownGeneration
	}
	return gen
}

func (c *RedisListingCache) Set(ctx context.Context, view string, gen int64, payload []byte) {
	if gen == unknownGeneration {
		return
	}
	keys := []string{c.genKey(view), c.key(view)}
	err := setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), payload, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("listing cache write failed", zap.String("view", view), zap.Error(err))
	}
}

// Invalidate bumps the generation and drops the payload in one transaction.
func (c *RedisListingCache) Invalidate(ctx context.Context, view string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(view))
		pipe.Del(ctx, c.key(view))
		return nil
	})
	if err != nil {
		c.logger.Error("listing cache invalidation failed", zap.String("view", view), zap.Error(err))
	}
}

var _ ListingCache = (*RedisListingCache)(nil)
