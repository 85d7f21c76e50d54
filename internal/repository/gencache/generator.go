// Package gencache is a caching decorator for the reasoning generator.
// Responses are memoized in a key-value store under a hash of the exact
// prompt and the generation parameters, with a short TTL: prompts embed
// per-dog evidence, so entries age out quickly by design.
package gencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pawmatch/pawmatch/internal/db"
	"github.com/pawmatch/pawmatch/internal/domain"
	"github.com/pawmatch/pawmatch/internal/usecase/reason"
)

// cacheKeyPrefix is resolved at call time: the key prefix is
// configurable and set during startup.
func cacheKeyPrefix() string { return domain.KeyPrefix + "gen_cache:" }

// store is the consumer interface for the generation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGenerator memoizes generation responses in a key-value store.
type CachedGenerator struct {
	inner      reason.Generator
	store      store
	params     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. params fingerprints the generation
// settings so the same prompt under different settings never shares an
// entry. cacheTotal is a counter vec with label "result" ("hit"/"miss"),
// passed explicitly.
func New(
	inner reason.Generator,
	s store,
	params string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGenerator {
	return &CachedGenerator{
		inner:      inner,
		store:      s,
		params:     params,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Generate returns a cached response or calls the inner generator.
func (c *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := c.cacheKey(prompt)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return text, nil
	}

	c.incCache("miss")

	text, err := c.inner.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reasoning: %w", err)
	}

	c.putToCache(ctx, key, text)
	return text, nil
}

func (c *CachedGenerator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedGenerator) cacheKey(prompt string) string {
	h := sha256.Sum256([]byte(c.params + "\x00" + prompt))
	return cacheKeyPrefix() + hex.EncodeToString(h[:])
}

func (c *CachedGenerator) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached generation", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedGenerator) putToCache(ctx context.Context, key, text string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache generation", zap.String("key", key), zap.Error(err))
	}
}
