package localstore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techboard/techboard/internal/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	fsStore, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs backend: %v", err)
	}

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"fs":     fsStore,
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get("missing"); err != nil || ok {
				t.Errorf("Missing key: ok=%v err=%v", ok, err)
			}

			want := []byte(`{"theme":"dark"}`)
			if err := store.Set("ui-storage", want); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			got, ok, err := store.Get("ui-storage")
			if err != nil || !ok {
				t.Fatalf("Get failed: ok=%v err=%v", ok, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("Got %q, want %q", got, want)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("k", []byte("first")); err != nil {
				t.Fatal(err)
			}
			if err := store.Set("k", []byte("second")); err != nil {
				t.Fatal(err)
			}

			got, ok, err := store.Get("k")
			if err != nil || !ok {
				t.Fatalf("Get failed: ok=%v err=%v", ok, err)
			}
			if string(got) != "second" {
				t.Errorf("Got %q, want the overwritten value", got)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("k", []byte("v")); err != nil {
				t.Fatal(err)
			}
			if err := store.Delete("k"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, ok, _ := store.Get("k"); ok {
				t.Error("Key survived deletion")
			}

			// Deleting an absent key is a no-op.
			if err := store.Delete("k"); err != nil {
				t.Errorf("Deleting an absent key failed: %v", err)
			}
		})
	}
}

func TestFSStoreDeleteWrapsError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Occupy the key's path with a non-empty directory so os.Remove fails.
	if err := os.MkdirAll(filepath.Join(dir, "blocked.json", "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	err = store.Delete("blocked")
	if err == nil {
		t.Fatal("Expected an error deleting an undeletable key")
	}
	if !strings.Contains(err.Error(), `"blocked"`) {
		t.Errorf("Delete error does not name the key: %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	value := []byte("original")
	if err := store.Set("k", value); err != nil {
		t.Fatal(err)
	}

	value[0] = 'X'

	got, _, _ := store.Get("k")
	if string(got) != "original" {
		t.Errorf("Stored value aliased the caller's slice: %q", got)
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := Open(config.StorageConfig{Driver: "memory"})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		store.Close()
	})

	t.Run("sqlite", func(t *testing.T) {
		store, err := Open(config.StorageConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "s.db")})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		store.Close()
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Open(config.StorageConfig{Driver: "redis"}); err == nil {
			t.Error("An unknown driver should be rejected")
		}
	})
}
