// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go provides the Valkey-backed cache for suggestion bundles and
// popular-search lists. The cache is an optimization only: every failure
// degrades to a miss, and a cold cache produces the same results as a
// warm one.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"platepress/internal/models"
)

const (
	suggestKeyPrefix = "suggest:"
	popularKeyPrefix = "popular:"

	// DefaultSuggestTTL bounds staleness of autocomplete results.
	DefaultSuggestTTL = 5 * time.Minute

	// DefaultPopularTTL bounds staleness of the popular-search summary,
	// which shifts much more slowly than autocomplete.
	DefaultPopularTTL = time.Hour
)

// ConnectValkey creates a Valkey client and verifies the connection with
// a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Cache stores suggestion results in Valkey, keyed by (query, limit).
type Cache struct {
	client     *redis.Client
	suggestTTL time.Duration
	popularTTL time.Duration
}

// NewCache creates a suggestion cache. Zero TTLs take the defaults.
func NewCache(client *redis.Client, suggestTTL, popularTTL time.Duration) *Cache {
	if suggestTTL == 0 {
		suggestTTL = DefaultSuggestTTL
	}
	if popularTTL == 0 {
		popularTTL = DefaultPopularTTL
	}
	return &Cache{client: client, suggestTTL: suggestTTL, popularTTL: popularTTL}
}

// GetBundle retrieves a cached suggestion bundle. Returns false on miss
// or any cache error.
func (c *Cache) GetBundle(ctx context.Context, query string, limit int) (models.SuggestionBundle, bool) {
	var bundle models.SuggestionBundle
	raw, err := c.client.Get(ctx, bundleKey(query, limit)).Bytes()
	if err == redis.Nil {
		return bundle, false
	}
	if err != nil {
		slog.Warn("suggestion cache get error", "query", query, "error", err)
		return bundle, false
	}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		slog.Warn("suggestion cache decode error", "query", query, "error", err)
		return bundle, false
	}
	return bundle, true
}

// SetBundle stores a suggestion bundle. Best-effort: errors are logged,
// never returned.
func (c *Cache) SetBundle(ctx context.Context, query string, limit int, bundle models.SuggestionBundle) {
	raw, err := json.Marshal(bundle)
	if err != nil {
		slog.Warn("suggestion cache encode error", "query", query, "error", err)
		return
	}
	if err := c.client.Set(ctx, bundleKey(query, limit), raw, c.suggestTTL).Err(); err != nil {
		slog.Warn("suggestion cache set error", "query", query, "error", err)
	}
}

// GetPopular retrieves a cached popular-search list.
func (c *Cache) GetPopular(ctx context.Context, limit int) ([]string, bool) {
	raw, err := c.client.Get(ctx, popularKey(limit)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("popular cache get error", "error", err)
		return nil, false
	}
	var terms []string
	if err := json.Unmarshal(raw, &terms); err != nil {
		slog.Warn("popular cache decode error", "error", err)
		return nil, false
	}
	return terms, true
}

// SetPopular stores a popular-search list, best-effort.
func (c *Cache) SetPopular(ctx context.Context, limit int, terms []string) {
	raw, err := json.Marshal(terms)
	if err != nil {
		slog.Warn("popular cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, popularKey(limit), raw, c.popularTTL).Err(); err != nil {
		slog.Warn("popular cache set error", "error", err)
	}
}

func bundleKey(query string, limit int) string {
	return fmt.Sprintf("%s%d:%s", suggestKeyPrefix, limit, query)
}

func popularKey(limit int) string {
	return fmt.Sprintf("%s%d", popularKeyPrefix, limit)
}
