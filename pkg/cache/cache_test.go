package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// roundTrip exercises the basic contract shared by every implementation.
func roundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "absent"); ok || err != nil {
		t.Fatalf("Get(absent) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok=%v err=%v, want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want payload", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry survived delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestFileCache(t *testing.T) {
	c, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	roundTrip(t, c)
}

func TestMemoryTTLExpiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry still returned")
	}
}

func TestFileTTLExpiry(t *testing.T) {
	c, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry still returned")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	path := c.path("k")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("corrupt entry: ok=%v err=%v, want silent miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCacheLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFile(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Set(context.Background(), "some-key", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Entries live in a two-character subdirectory.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() || len(entries[0].Name()) != 2 {
		t.Fatalf("unexpected layout: %v", entries)
	}
	files, err := os.ReadDir(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0].Name(), ".json") {
		t.Fatalf("unexpected entry file: %v", files)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNull()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("null cache stored something: ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("layout", map[string]string{"g": "1"}, "opts")
	b := Key("layout", map[string]string{"g": "1"}, "opts")
	if a != b {
		t.Errorf("same inputs, different keys: %q vs %q", a, b)
	}

	c := Key("layout", map[string]string{"g": "2"}, "opts")
	if a == c {
		t.Error("different inputs, same key")
	}

	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("key %q missing prefix", a)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("abc"))
	if len(h) != 64 {
		t.Errorf("len = %d, want 64", len(h))
	}
	if h != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected digest %q", h)
	}
}
