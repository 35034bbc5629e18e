package inventory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jordi-domingo/webdc3/pkg/contracts"
)

func TestLookupKeyDeterministic(t *testing.T) {
	start := time.Date(2013, 8, 14, 6, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	a, err := lookupKey(start, end, apeBHZ)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	b, err := lookupKey(start, end, apeBHZ)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if a != b {
		t.Fatalf("equivalent lookups must share a key: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "webdc3:inventory:") {
		t.Fatalf("unexpected key namespace: %q", a)
	}

	// Any parameter change must change the key.
	c, err := lookupKey(start, end.Add(time.Second), apeBHZ)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	d, err := lookupKey(start, end, hgnBHN)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if a == c || a == d {
		t.Fatal("distinct lookups must not collide")
	}

	// Zone spelling must not matter: the key canonicalizes to UTC.
	cet := time.FixedZone("CET", 3600)
	e, err := lookupKey(start.In(cet), end.In(cet), apeBHZ)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if a != e {
		t.Fatalf("zone spelling changed the key: %q vs %q", a, e)
	}
}

// An unreachable Redis must degrade to the inner backend, not fail the
// request.
func TestRedisCacheDegradesWithoutServer(t *testing.T) {
	inner := testMemory()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1", // nothing listens here
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewRedisCache(inner, client, time.Minute)
	at := time.Date(2013, 8, 14, 6, 12, 0, 0, time.UTC)

	info, err := cache.StreamInfo(context.Background(), at, at, apeBHZ)
	if err != nil {
		t.Fatalf("lookup must fall through: %v", err)
	}
	if info == nil || info.Latitude != 37.07 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

// Integration test against a live Redis; skips when none is available.
func TestRedisCacheIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	inner := &countingCache{Cache: testMemory()}
	cache := NewRedisCache(inner, client, time.Minute)
	at := time.Date(2013, 8, 14, 6, 12, 0, 0, time.UTC)

	// Unique window per run so earlier runs' entries cannot satisfy it.
	start := at.Add(time.Duration(time.Now().UnixNano()) % time.Hour)
	end := start.Add(10 * time.Minute)

	first, err := cache.StreamInfo(ctx, start, end, apeBHZ)
	if err != nil || first == nil {
		t.Fatalf("first lookup: (%v, %v)", first, err)
	}
	second, err := cache.StreamInfo(ctx, start, end, apeBHZ)
	if err != nil || second == nil {
		t.Fatalf("second lookup: (%v, %v)", second, err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected the second lookup to hit redis, inner saw %d calls", inner.calls)
	}
	if *first != *second {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}

	// A cached "absent" is also served from redis.
	missing := contracts.ChannelKey{Network: "XX", Station: "NONE", Channel: "BHZ"}
	if info, err := cache.StreamInfo(ctx, start, end, missing); err != nil || info != nil {
		t.Fatalf("expected cached absence, got (%v, %v)", info, err)
	}
	calls := inner.calls
	if info, err := cache.StreamInfo(ctx, start, end, missing); err != nil || info != nil {
		t.Fatalf("expected cached absence, got (%v, %v)", info, err)
	}
	if inner.calls != calls {
		t.Fatal("cached absence must not reach the inner backend")
	}
}

type countingCache struct {
	Cache
	calls int
}

func (c *countingCache) StreamInfo(ctx context.Context, start, end time.Time, key contracts.ChannelKey) (*contracts.StreamInfo, error) {
	c.calls++
	return c.Cache.StreamInfo(ctx, start, end, key)
}
