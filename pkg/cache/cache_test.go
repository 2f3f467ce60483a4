package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key, want false")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Negative TTL means no expiration per the interface contract.
	if _, ok, _ := c.Get(ctx, "key"); !ok {
		t.Error("Get() ok = false for non-expiring entry, want true")
	}

	if err := c.Set(ctx, "short", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("Get() ok = true for expired entry, want false")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() ok = true after Delete, want false")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v, want nil", err)
	}
}

func TestFileCache_StoresPayloadVerbatim(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	payload := []byte(`{"root":{"id":"page"}}`)
	if err := c.Set(context.Background(), "key", payload, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sum := Hash([]byte("key"))
	raw, err := os.ReadFile(filepath.Join(dir, sum[:2], sum[2:]+".result"))
	if err != nil {
		t.Fatalf("reading entry file: %v", err)
	}
	sep := bytes.IndexByte(raw, '\n')
	if sep < 0 {
		t.Fatal("entry file has no header line")
	}
	if got := raw[sep+1:]; !bytes.Equal(got, payload) {
		t.Errorf("stored payload = %q, want %q verbatim", got, payload)
	}
}

func TestFileCache_CorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	sum := Hash([]byte("key"))
	path := filepath.Join(dir, sum[:2], sum[2:]+".result")
	if err := os.WriteFile(path, []byte("not a header"), 0o644); err != nil {
		t.Fatalf("corrupting entry: %v", err)
	}

	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("Get() = %v, %v, want miss without error", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestScopedCache_PrefixIsolation(t *testing.T) {
	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer inner.Close()

	ctx := context.Background()
	a := NewScopedCache(inner, "a:")
	b := NewScopedCache(inner, "b:")

	if err := a.Set(ctx, "key", []byte("from-a"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, _ := b.Get(ctx, "key"); ok {
		t.Error("scope b sees scope a's entry")
	}
	data, ok, _ := a.Get(ctx, "key")
	if !ok || string(data) != "from-a" {
		t.Errorf("scope a Get() = %q, %v, want %q, true", data, ok, "from-a")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("NullCache Get() ok = true, want false")
	}
}

func TestResultKey(t *testing.T) {
	k1 := ResultKey([]byte("capture-a"))
	k2 := ResultKey([]byte("capture-b"))
	if k1 == k2 {
		t.Error("different captures produced the same key")
	}
	if k1 != ResultKey([]byte("capture-a")) {
		t.Error("same capture produced different keys")
	}
}
