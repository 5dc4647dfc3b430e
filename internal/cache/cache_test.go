package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	t.Run("miss on empty cache", func(t *testing.T) {
		if _, err := c.Get(ctx, "summary", "alice"); !errors.Is(err, ErrMiss) {
			t.Errorf("err = %v, want ErrMiss", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := c.Set(ctx, "summary", "alice", "v1", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := c.Get(ctx, "summary", "alice")
		if err != nil || got != "v1" {
			t.Errorf("Get = %q, %v; want v1", got, err)
		}
	})

	t.Run("namespaces are separate", func(t *testing.T) {
		if _, err := c.Get(ctx, "graph", "alice"); !errors.Is(err, ErrMiss) {
			t.Errorf("err = %v, want ErrMiss", err)
		}
	})

	t.Run("entries expire", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		if _, err := c.Get(ctx, "summary", "alice"); !errors.Is(err, ErrMiss) {
			t.Errorf("err = %v, want ErrMiss after expiry", err)
		}
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		if err := c.Set(ctx, "summary", "bob", "v2", 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		now = now.Add(24 * time.Hour)
		if got, err := c.Get(ctx, "summary", "bob"); err != nil || got != "v2" {
			t.Errorf("Get = %q, %v; want v2", got, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := c.Delete(ctx, "summary", "bob"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := c.Get(ctx, "summary", "bob"); !errors.Is(err, ErrMiss) {
			t.Errorf("err = %v, want ErrMiss after delete", err)
		}
	})
}
