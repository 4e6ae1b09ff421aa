package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

func newTestCache(t *testing.T) (*CategoryCache, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewCategoryCache(client), server
}

func TestCategoryCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if _, _, ok := c.GetHierarchy(ctx, 1); ok {
		t.Fatal("expected a cache miss before anything is set")
	}

	sortPath := []int32{1, 2, 3}
	hierarchy := []domain.PrintableCategory{{ID: 3, Name: "Leaf", Level: 1}}
	c.SetHierarchy(ctx, 1, sortPath, hierarchy)

	gotSortPath, gotHierarchy, ok := c.GetHierarchy(ctx, 1)
	if !ok {
		t.Fatal("expected a cache hit after SetHierarchy")
	}
	if len(gotSortPath) != 3 || gotSortPath[2] != 3 {
		t.Errorf("unexpected sort path round-trip: %v", gotSortPath)
	}
	if len(gotHierarchy) != 1 || gotHierarchy[0].Name != "Leaf" {
		t.Errorf("unexpected hierarchy round-trip: %+v", gotHierarchy)
	}
}

func TestCategoryCache_InvalidateAll(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetHierarchy(ctx, 1, []int32{1}, nil)
	c.SetHierarchy(ctx, 2, []int32{2}, nil)

	c.InvalidateAll(ctx)

	if _, _, ok := c.GetHierarchy(ctx, 1); ok {
		t.Error("expected category 1's entry to be gone after InvalidateAll")
	}
	if _, _, ok := c.GetHierarchy(ctx, 2); ok {
		t.Error("expected category 2's entry to be gone after InvalidateAll")
	}
}

func TestCategoryCache_NilClientDegradesGracefully(t *testing.T) {
	var c *CategoryCache
	ctx := context.Background()

	if _, _, ok := c.GetHierarchy(ctx, 1); ok {
		t.Error("expected a nil cache to always miss")
	}
	// Must not panic.
	c.SetHierarchy(ctx, 1, []int32{1}, nil)
	c.InvalidateAll(ctx)
}

func TestCategoryCache_DisconnectedClientDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewCategoryCache(client)
	ctx := context.Background()

	if _, _, ok := c.GetHierarchy(ctx, 1); ok {
		t.Error("expected a disconnected client to degrade to a cache miss, not an error")
	}
}
