package cache

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type entry struct {
	Name  string `json:"name"`
	Cores int    `json:"cores"`
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	key := "catalog_hetzner_server_types"

	want := []entry{{Name: "cpx11", Cores: 2}, {Name: "cpx31", Cores: 4}}
	if err := c.Set(key, want); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	var got []entry
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit, got miss")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached value mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_ExpiredEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "images"

	if err := c.Set(key, []string{"ubuntu-24.04"}); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	path := c.pathForKey(key)
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("failed to update cache mtime: %v", err)
	}

	var got []string
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for expired entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected expired entry to be removed, stat err = %v", err)
	}
}

func TestCache_ExpiryUsesClock(t *testing.T) {
	c := New(t.TempDir())
	if err := c.Set("locations", []string{"fsn1"}); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	c.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	var got []string
	hit, err := c.Get("locations", 24*time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss once the clock passes the TTL")
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "server_types"

	path := c.pathForKey(key)
	if err := os.WriteFile(path, []byte("{invalid json"), 0o600); err != nil {
		t.Fatalf("failed to write corrupt cache file: %v", err)
	}

	var got []string
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for corrupt entry")
	}
}

func TestCache_NilAndDisabled(t *testing.T) {
	var c *Cache
	if err := c.Set("k", 1); err != nil {
		t.Fatalf("nil cache Set: %v", err)
	}
	var v int
	if hit, err := c.Get("k", time.Hour, &v); hit || err != nil {
		t.Fatalf("nil cache Get = (%v, %v), want (false, nil)", hit, err)
	}

	enabled := New(t.TempDir())
	if err := enabled.Set("k", 1); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}
	if hit, _ := enabled.Get("k", 0, &v); hit {
		t.Error("expected a zero TTL to disable reads")
	}
}

func TestCache_InvalidateAndClear(t *testing.T) {
	c := New(t.TempDir())
	for _, key := range []string{"a", "b"} {
		if err := c.Set(key, key); err != nil {
			t.Fatalf("failed to set %q: %v", key, err)
		}
	}

	if err := c.Invalidate("a"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := c.Invalidate("missing"); err != nil {
		t.Fatalf("Invalidate missing key: %v", err)
	}

	var got string
	if hit, _ := c.Get("a", time.Hour, &got); hit {
		t.Error("expected a to be invalidated")
	}
	if hit, _ := c.Get("b", time.Hour, &got); !hit {
		t.Error("expected b to survive invalidating a")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache dir, got %d entries", len(entries))
	}
}

func TestFetch(t *testing.T) {
	c := New(t.TempDir())
	calls := 0
	load := func() ([]entry, error) {
		calls++
		return []entry{{Name: "cx22", Cores: 2}}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(c, "server_types", time.Hour, load)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if len(got) != 1 || got[0].Name != "cx22" {
			t.Fatalf("unexpected value: %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected load to run once, ran %d times", calls)
	}
}

func TestFetch_LoadError(t *testing.T) {
	c := New(t.TempDir())
	boom := errors.New("boom")

	_, err := Fetch(c, "images", time.Hour, func() ([]string, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	var got []string
	if hit, _ := c.Get("images", time.Hour, &got); hit {
		t.Error("expected failed loads not to be cached")
	}
}

func TestFetch_NilCache(t *testing.T) {
	calls := 0
	for i := 0; i < 2; i++ {
		if _, err := Fetch(nil, "k", time.Hour, func() (int, error) { calls++; return 7, nil }); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("expected a nil cache to always load, ran %d times", calls)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"":                          "cache",
		"catalog_hetzner_images":    "catalog_hetzner_images",
		"catalog/hetzner images.v2": "catalog_hetzner_images_v2",
	}
	for in, want := range tests {
		if got := sanitizeKey(in); got != want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
