package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, path
}

func TestKey(t *testing.T) {
	if Key("a := 1") != Key("a := 1") {
		t.Fatal("Key is not deterministic")
	}
	if Key("a := 1") == Key("a := 2") {
		t.Fatal("different sources share a key")
	}
	if len(Key("")) != 64 {
		t.Fatalf("expected a 64 char hex key, got %q", Key(""))
	}
}

func TestMiss(t *testing.T) {
	c, _ := openTemp(t)

	out, ok, err := c.Get("a := 1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || out != "" {
		t.Fatalf("expected a miss, got %q", out)
	}
}

func TestPutGet(t *testing.T) {
	c, _ := openTemp(t)

	if err := c.Put("a := 1", "const a = 1;"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		out, ok, err := c.Get("a := 1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || out != "const a = 1;" {
			t.Fatalf("Get() = %q, %v", out, ok)
		}
	}

	entries, hits, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if entries != 1 || hits != 3 {
		t.Errorf("Stats() = %d entries, %d hits, want 1 and 3", entries, hits)
	}
}

func TestPutReplaces(t *testing.T) {
	c, _ := openTemp(t)

	if err := c.Put("x", "old;"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Put("x", "new;"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	out, ok, err := c.Get("x")
	if err != nil || !ok {
		t.Fatalf("Get() = %q, %v, %v", out, ok, err)
	}
	if out != "new;" {
		t.Errorf("Get() = %q, want %q", out, "new;")
	}

	entries, _, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if entries != 1 {
		t.Errorf("expected 1 entry, got %d", entries)
	}
}

func TestPersistence(t *testing.T) {
	c, path := openTemp(t)
	if err := c.Put("b := 2", "const b = 2;"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	c.Close()

	reopened, err := Open(path, false)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	out, ok, err := reopened.Get("b := 2")
	if err != nil || !ok || out != "const b = 2;" {
		t.Fatalf("Get() after reopen = %q, %v, %v", out, ok, err)
	}
}

func TestPrune(t *testing.T) {
	c, _ := openTemp(t)
	if err := c.Put("a", "a;"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	n, err := c.Prune(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 0 {
		t.Errorf("pruned %d fresh entries", n)
	}

	n, err = c.Prune(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d entries, want 1", n)
	}
	if _, ok, _ := c.Get("a"); ok {
		t.Error("entry still cached after prune")
	}
}
