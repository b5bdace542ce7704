package cache

import (
	"testing"
	"time"
)

func setupLayered(t *testing.T) (*LayeredCache, *RedisCache) {
	remote, _ := setupTestRedis(t)
	return NewLayeredCache(remote), remote
}

func TestLayeredCacheSetGet(t *testing.T) {
	layered, _ := setupLayered(t)

	if err := layered.Set("key1", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got string
	if err := layered.Get("key1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "value" {
		t.Errorf("Expected 'value', got '%s'", got)
	}

	stats := layered.Stats()
	if stats["local_hits"].(int64) != 1 {
		t.Errorf("Expected one local hit, got %v", stats["local_hits"])
	}
}

func TestLayeredCachePromotesRemoteHit(t *testing.T) {
	layered, remote := setupLayered(t)

	// Write only to the remote level.
	if err := remote.Set("key1", "value", time.Minute); err != nil {
		t.Fatalf("remote Set failed: %v", err)
	}

	var got string
	if err := layered.Get("key1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	stats := layered.Stats()
	if stats["remote_hits"].(int64) != 1 {
		t.Errorf("Expected one remote hit, got %v", stats["remote_hits"])
	}

	// Second read should come from the promoted local copy.
	if err := layered.Get("key1", &got); err != nil {
		t.Fatalf("Second Get failed: %v", err)
	}
	stats = layered.Stats()
	if stats["local_hits"].(int64) != 1 {
		t.Errorf("Expected one local hit after promotion, got %v", stats["local_hits"])
	}
}

func TestLayeredCacheMiss(t *testing.T) {
	layered, _ := setupLayered(t)

	var dest string
	if err := layered.Get("missing", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
	stats := layered.Stats()
	if stats["misses"].(int64) != 1 {
		t.Errorf("Expected one recorded miss, got %v", stats["misses"])
	}
}

func TestLayeredCacheDelete(t *testing.T) {
	layered, _ := setupLayered(t)

	layered.Set("key1", "value", time.Minute)
	if err := layered.Delete("key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var dest string
	if err := layered.Get("key1", &dest); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestLayeredCacheDeletePatternFlushesLocal(t *testing.T) {
	layered, _ := setupLayered(t)

	layered.Set("tasks:all:none", "a", time.Minute)
	layered.Set("task:xyz", "b", time.Minute)

	if err := layered.DeletePattern("tasks:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	var dest string
	if err := layered.Get("tasks:all:none", &dest); err != ErrCacheMiss {
		t.Errorf("Expected pattern-matched key gone, got %v", err)
	}
	// The local copy was flushed but the remote still holds non-matching
	// keys, so this read repopulates from redis.
	if err := layered.Get("task:xyz", &dest); err != nil {
		t.Errorf("Expected non-matching key served from remote, got %v", err)
	}
}

func TestLayeredCacheServesLocalWhenRemoteDown(t *testing.T) {
	remote, mr := setupTestRedis(t)
	layered := NewLayeredCache(remote)

	layered.Set("key1", "value", time.Minute)
	mr.Close()

	var got string
	if err := layered.Get("key1", &got); err != nil {
		t.Fatalf("Expected local level to serve after redis went away: %v", err)
	}
	if got != "value" {
		t.Errorf("Expected 'value', got '%s'", got)
	}
}
