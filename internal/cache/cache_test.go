package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCacheKey_VersionedPrefix(t *testing.T) {
	key := CacheKey("search:acme revenue 2023")
	if !strings.HasPrefix(key, "sago:v1:") {
		t.Errorf("Expected versioned prefix, got %q", key)
	}
	// sha256 hex digest after the prefix
	if len(key) != len("sago:v1:")+64 {
		t.Errorf("Expected 64 hex chars after prefix, got %q", key)
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	a := CacheKey("page:https://example.com/article")
	b := CacheKey("page:https://example.com/article")
	c := CacheKey("page:https://example.com/other")

	if a != b {
		t.Error("Expected same lookup to produce the same key")
	}
	if a == c {
		t.Error("Expected different lookups to produce different keys")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := c.Get("k")
	if !found {
		t.Fatal("Expected key to be found")
	}
	if string(got) != "value" {
		t.Errorf("Expected 'value', got %q", got)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("k", []byte("value"), 0)
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected key gone after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("k", []byte("value"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be gone")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := CacheKey("search:test query")
	if err := c.Set(key, []byte(`[{"title":"t"}]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := c.Get(key)
	if !found {
		t.Fatal("Expected key to be found")
	}
	if string(got) != `[{"title":"t"}]` {
		t.Errorf("Unexpected cached value: %q", got)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("k", []byte("value"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be gone")
	}
}

func TestDiskCache_MissingKey(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if _, found := c.Get("never-set"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestLayeredCache_PromotesDiskHitToMemory(t *testing.T) {
	dir := t.TempDir()

	// Seed disk through one layered cache, then read through a fresh one
	// whose memory layer is cold
	seed := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := seed.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	fresh := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := fresh.Get("k")
	if !found {
		t.Fatal("Expected disk hit through layered cache")
	}
	if string(got) != "value" {
		t.Errorf("Expected 'value', got %q", got)
	}

	// After promotion the memory layer serves the key even if the disk
	// entry disappears
	_ = fresh.disk.Delete("k")
	if _, found := fresh.Get("k"); !found {
		t.Error("Expected promoted entry in memory layer")
	}
}

func TestLayeredCache_Delete(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	_ = c.Set("k", []byte("value"), 0)
	_ = c.Delete("k")

	if _, found := c.Get("k"); found {
		t.Error("Expected key gone from both layers")
	}
}
