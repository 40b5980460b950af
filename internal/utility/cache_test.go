package utility

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok || v != 42 {
		t.Errorf("Get = %v/%v, want 42/true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get on missing key should report false")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10*time.Millisecond, time.Minute)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should not be returned")
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("approval_stats:kensaDB:a", 1)
	c.Set("approval_stats:pressDB:b", 2)
	c.Set("user:admin", 3)

	c.DeletePrefix("approval_stats:")

	if _, ok := c.Get("approval_stats:kensaDB:a"); ok {
		t.Error("prefixed entry should be gone")
	}
	if _, ok := c.Get("approval_stats:pressDB:b"); ok {
		t.Error("prefixed entry should be gone")
	}
	if _, ok := c.Get("user:admin"); !ok {
		t.Error("unrelated entry should survive")
	}
}
