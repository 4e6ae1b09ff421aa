// Package cache provides an optional Redis-backed cache-aside layer for
// read-heavy, derived data. It never sits on the write path and a miss
// (including a disconnected Redis) always degrades to "recompute", never
// to an error -- see CategoryCache.GetHierarchy.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

const hierarchyTTL = 10 * time.Minute

// CategoryCache caches the derived print-hierarchy/sort-path pair for a
// category, keyed by category id. This is the one piece of the category
// tree expensive enough to be worth caching: GetPrintHierarchyAndSortPath
// walks the tree from root to node on every call.
type CategoryCache struct {
	client *redis.Client
}

func NewCategoryCache(client *redis.Client) *CategoryCache {
	return &CategoryCache{client: client}
}

type hierarchyEntry struct {
	SortPath  []int32                    `json:"sortPath"`
	Hierarchy []domain.PrintableCategory `json:"hierarchy"`
}

func hierarchyKey(categoryID int32) string {
	return fmt.Sprintf("category:hierarchy:%d", categoryID)
}

// GetHierarchy returns the cached sort path and print hierarchy for a
// category, or ok=false on any miss -- including a Redis error, which is
// treated the same as a cold cache rather than surfaced to the caller.
func (c *CategoryCache) GetHierarchy(ctx context.Context, categoryID int32) (sortPath []int32, hierarchy []domain.PrintableCategory, ok bool) {
	if c == nil || c.client == nil {
		return nil, nil, false
	}

	raw, err := c.client.Get(ctx, hierarchyKey(categoryID)).Bytes()
	if err != nil {
		return nil, nil, false
	}

	var entry hierarchyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, nil, false
	}
	return entry.SortPath, entry.Hierarchy, true
}

// SetHierarchy populates the cache entry for a category. Errors are
// swallowed: a failed cache write degrades to "always recompute", not a
// request failure.
func (c *CategoryCache) SetHierarchy(ctx context.Context, categoryID int32, sortPath []int32, hierarchy []domain.PrintableCategory) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(hierarchyEntry{SortPath: sortPath, Hierarchy: hierarchy})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, hierarchyKey(categoryID), data, hierarchyTTL).Err()
}

// InvalidateAll drops every cached hierarchy entry. Called whenever a
// category is created, reparented, or deleted, since any one of those can
// shift the root-to-node path of an arbitrary number of other categories.
func (c *CategoryCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "category:hierarchy:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}
