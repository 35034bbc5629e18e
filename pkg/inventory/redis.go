package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gowebpki/jcs"
	"github.com/redis/go-redis/v9"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

// RedisCache is a read-through cache in front of another inventory
// backend. Point lookups (including "absent") are cached under a
// canonical key; List always passes through, since listing results are
// unbounded and rare in request traffic. Redis being down degrades to
// the inner backend instead of failing requests.
type RedisCache struct {
	inner  Cache
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps inner. TTL defaults to one hour; inventories change
// on the order of days, so staleness up to the TTL is acceptable.
func NewRedisCache(inner Cache, client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "inventory.redis"),
	}
}

// cachedInfo is the envelope stored in Redis. Found distinguishes a
// cached "absent" from a cache miss.
type cachedInfo struct {
	Found bool                  `json:"found"`
	Info  *contracts.StreamInfo `json:"info,omitempty"`
}

// StreamInfo implements Cache.
func (r *RedisCache) StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error) {
	cacheKey, err := lookupKey(start, end, key)
	if err != nil {
		return r.inner.StreamInfo(ctx, start, end, key)
	}

	if raw, err := r.client.Get(ctx, cacheKey).Bytes(); err == nil {
		var c cachedInfo
		if err := json.Unmarshal(raw, &c); err == nil {
			if !c.Found {
				return nil, nil
			}
			return c.Info, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn("redis get failed, falling through", "error", err)
	}

	info, err := r.inner.StreamInfo(ctx, start, end, key)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedInfo{Found: info != nil, Info: info})
	if err == nil {
		if err := r.client.Set(ctx, cacheKey, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("redis set failed", "error", err)
		}
	}
	return info, nil
}

// List implements Cache by delegating to the inner backend.
func (r *RedisCache) List(ctx context.Context, start, end time.Time, pattern contracts.ChannelKey) ([]StreamEpoch, error) {
	return r.inner.List(ctx, start, end, pattern)
}

// lookupKey derives a deterministic cache key: the lookup parameters are
// serialized, canonicalized per RFC 8785 and hashed, so equivalent
// lookups collide regardless of map ordering or float formatting drift.
func lookupKey(start, end time.Time, key contracts.ChannelKey) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"op":    "streaminfo",
		"start": start.UTC().Format(time.RFC3339Nano),
		"end":   end.UTC().Format(time.RFC3339Nano),
		"key":   key,
	})
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(payload)
	if err != nil {
		return "", fmt.Errorf("canonicalize lookup key: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return "webdc3:inventory:" + hex.EncodeToString(sum[:]), nil
}
