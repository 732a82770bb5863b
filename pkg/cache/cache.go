package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/redis"
)

// Backend is the subset of the redis client the cache rides on.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	CacheKey(parts ...string) string
	CounterKey(name string) string
}

// Client is a versioned JSON read cache. Writers bump a per-namespace
// version counter instead of deleting entries; stale generations fall
// out on TTL.
type Client struct {
	backend Backend
	ttl     time.Duration
	logg    *logger.Logger
	enabled bool
}

// New builds a cache client. A nil backend or a disabled flag yields an
// inert client whose reads always miss.
func New(backend Backend, cfg config.CacheConfig, logg *logger.Logger) *Client {
	return &Client{
		backend: backend,
		ttl:     cfg.ListingTTL,
		logg:    logg,
		enabled: cfg.Enabled && backend != nil,
	}
}

// GetJSON loads a cached payload into dest. It reports whether a fresh
// entry was found; backend failures are logged and treated as misses.
func (c *Client) GetJSON(ctx context.Context, namespace string, parts []string, dest any) bool {
	if !c.enabled {
		return false
	}
	key, err := c.entryKey(ctx, namespace, parts)
	if err != nil {
		c.logg.Error(ctx, "cache version lookup failed", err)
		return false
	}
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		if !redis.IsMissing(err) {
			c.logg.Error(ctx, "cache read failed", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logg.Error(ctx, "cache entry corrupt", err)
		return false
	}
	return true
}

// SetJSON stores a payload under the namespace's current version.
func (c *Client) SetJSON(ctx context.Context, namespace string, parts []string, value any) {
	if !c.enabled {
		return
	}
	key, err := c.entryKey(ctx, namespace, parts)
	if err != nil {
		c.logg.Error(ctx, "cache version lookup failed", err)
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.logg.Error(ctx, "cache marshal failed", err)
		return
	}
	if err := c.backend.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.logg.Error(ctx, "cache write failed", err)
	}
}

// Bump advances the namespace version, orphaning every live entry.
func (c *Client) Bump(ctx context.Context, namespace string) {
	if !c.enabled {
		return
	}
	if _, err := c.backend.Incr(ctx, c.versionKey(namespace)); err != nil {
		c.logg.Error(ctx, "cache version bump failed", err)
	}
}

func (c *Client) entryKey(ctx context.Context, namespace string, parts []string) (string, error) {
	version, err := c.version(ctx, namespace)
	if err != nil {
		return "", err
	}
	return c.backend.CacheKey(namespace, "v"+version, hashParts(parts)), nil
}

func (c *Client) version(ctx context.Context, namespace string) (string, error) {
	raw, err := c.backend.Get(ctx, c.versionKey(namespace))
	if redis.IsMissing(err) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (c *Client) versionKey(namespace string) string {
	return c.backend.CounterKey(namespace + "_version")
}

func hashParts(parts []string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
