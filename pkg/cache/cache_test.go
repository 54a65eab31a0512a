package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want value", data)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get of absent key reported a hit")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expired entry reported as hit")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("null cache reported a hit")
	}
}

func TestKeyerDerivation(t *testing.T) {
	k := NewDefaultKeyer()
	opts := GraphKeyOpts{Format: "json", RootName: "root"}

	a := k.GraphKey("hash1", opts)
	if b := k.GraphKey("hash1", opts); a != b {
		t.Error("same inputs produced different graph keys")
	}
	if b := k.GraphKey("hash2", opts); a == b {
		t.Error("different source hashes produced the same graph key")
	}
	if b := k.GraphKey("hash1", GraphKeyOpts{Format: "json", RootName: "root", Schema: true}); a == b {
		t.Error("schema flag not reflected in graph key")
	}

	out := k.OutputKey("ghash", "go", "types")
	if out2 := k.OutputKey("ghash", "python", "types"); out == out2 {
		t.Error("different languages produced the same output key")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "proj:")

	key := scoped.GraphKey("hash", GraphKeyOpts{})
	if key == base.GraphKey("hash", GraphKeyOpts{}) {
		t.Error("scoped key not prefixed")
	}
	if key[:5] != "proj:" {
		t.Errorf("scoped key = %q, want proj: prefix", key)
	}
}

func TestHashIsStable(t *testing.T) {
	if Hash([]byte("abc")) != Hash([]byte("abc")) {
		t.Error("hash of equal data differs")
	}
	if len(Hash([]byte("abc"))) != 64 {
		t.Errorf("hash length = %d, want 64", len(Hash([]byte("abc"))))
	}
}
