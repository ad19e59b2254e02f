package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestRedisCache runs against a live server named by KINVIEW_TEST_REDIS,
// for example redis://localhost:6379/15.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("KINVIEW_TEST_REDIS")
	if url == "" {
		t.Skip("KINVIEW_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	key := "kinview-test:" + uuid.NewString()
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("fresh key: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("layout"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "layout" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key should miss")
	}
}

func TestRedisClearPrefix(t *testing.T) {
	url := os.Getenv("KINVIEW_TEST_REDIS")
	if url == "" {
		t.Skip("KINVIEW_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	prefix := "kinview-test-" + uuid.NewString() + ":"
	other := "kinview-test-other:" + uuid.NewString()
	t.Cleanup(func() { _ = c.Delete(ctx, other) })
	for _, k := range []string{prefix + "a", prefix + "b", other} {
		if err := c.Set(ctx, k, []byte("x"), time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.ClearPrefix(ctx, prefix)
	if err != nil || n != 2 {
		t.Errorf("ClearPrefix() = %d, %v; want 2", n, err)
	}
	if _, hit, _ := c.Get(ctx, other); !hit {
		t.Error("key outside the prefix was removed")
	}
	if _, err := c.ClearPrefix(ctx, ""); err == nil {
		t.Error("ClearPrefix(\"\") should refuse")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache() with a bad url should fail")
	}
}
