package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
)

type fakeBackend struct {
	data map[string]string
	incr map[string]int64
	sets int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string]string{}, incr: map[string]int64{}}
}

func (f *fakeBackend) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	if v, ok := f.incr[key]; ok {
		return strconv.FormatInt(v, 10), nil
	}
	return "", goredis.Nil
}

func (f *fakeBackend) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	f.sets++
	return nil
}

func (f *fakeBackend) Incr(_ context.Context, key string) (int64, error) {
	f.incr[key]++
	return f.incr[key], nil
}

func (f *fakeBackend) CacheKey(parts ...string) string {
	key := "hf:cache"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (f *fakeBackend) CounterKey(name string) string {
	return "hf:counter:" + name
}

func testClient(backend Backend) *Client {
	logg := logger.New(logger.Options{ServiceName: "test"})
	return New(backend, config.CacheConfig{Enabled: true, ListingTTL: time.Minute}, logg)
}

type payload struct {
	Title string `json:"title"`
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	client := testClient(backend)

	parts := []string{"status=active", "viewer=none"}

	var out payload
	if client.GetJSON(ctx, "listings", parts, &out) {
		t.Fatalf("expected cold cache miss")
	}

	client.SetJSON(ctx, "listings", parts, payload{Title: "villa"})
	if !client.GetJSON(ctx, "listings", parts, &out) {
		t.Fatalf("expected hit after set")
	}
	if out.Title != "villa" {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestBumpOrphansEntries(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	client := testClient(backend)

	parts := []string{"status=active"}
	client.SetJSON(ctx, "listings", parts, payload{Title: "before"})

	client.Bump(ctx, "listings")

	var out payload
	if client.GetJSON(ctx, "listings", parts, &out) {
		t.Fatalf("expected miss after version bump")
	}

	client.SetJSON(ctx, "listings", parts, payload{Title: "after"})
	if !client.GetJSON(ctx, "listings", parts, &out) || out.Title != "after" {
		t.Fatalf("expected fresh entry under new version, got %+v", out)
	}
}

func TestKeyPartsAreOrderSensitive(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	client := testClient(backend)

	client.SetJSON(ctx, "listings", []string{"status=active", "viewer=u1"}, payload{Title: "a"})

	var out payload
	if client.GetJSON(ctx, "listings", []string{"viewer=u1", "status=active"}, &out) {
		t.Fatalf("differently ordered parts must not collide")
	}
}

func TestDisabledClientIsInert(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	logg := logger.New(logger.Options{ServiceName: "test"})
	client := New(backend, config.CacheConfig{Enabled: false, ListingTTL: time.Minute}, logg)

	client.SetJSON(ctx, "listings", []string{"x"}, payload{Title: "y"})
	if backend.sets != 0 {
		t.Fatalf("disabled cache must not write")
	}
	var out payload
	if client.GetJSON(ctx, "listings", []string{"x"}, &out) {
		t.Fatalf("disabled cache must miss")
	}

	nilBacked := New(nil, config.CacheConfig{Enabled: true}, logg)
	if nilBacked.GetJSON(ctx, "listings", []string{"x"}, &out) {
		t.Fatalf("nil backend must miss")
	}
}
