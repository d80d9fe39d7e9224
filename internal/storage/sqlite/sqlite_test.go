package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/swiper/internal/models"
	"github.com/mmynk/swiper/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "swiper-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Get on missing key", func(t *testing.T) {
		value, ok, err := store.Get(ctx, "session-a", "missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok || value != nil {
			t.Errorf("Expected no value, got %q", value)
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		if err := store.Set(ctx, "session-a", "k", []byte("one")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := store.Get(ctx, "session-a", "k")
		if err != nil || !ok {
			t.Fatalf("Get failed: ok=%v err=%v", ok, err)
		}
		if string(value) != "one" {
			t.Errorf("value = %q, want %q", value, "one")
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		if err := store.Set(ctx, "session-a", "k", []byte("two")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, _ := store.Get(ctx, "session-a", "k")
		if string(value) != "two" {
			t.Errorf("value = %q, want %q", value, "two")
		}
	})

	t.Run("Namespaces are isolated", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "session-b", "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected session-b to not see session-a's value")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "session-a", "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "session-a", "k"); ok {
			t.Error("Expected value to be deleted")
		}
		if err := store.Delete(ctx, "session-a", "k"); err != nil {
			t.Errorf("Deleting a missing key should succeed, got %v", err)
		}
	})

	t.Run("Liked list round trip", func(t *testing.T) {
		liked := []models.Profile{
			{Name: "Ada Lovelace", Age: 36, Location: "London, United Kingdom", Email: "ada@example.com"},
			{Name: "Alan Turing", Age: 41, Location: "Wilmslow, United Kingdom", Email: "alan@example.com"},
		}
		if err := storage.SaveLiked(ctx, store, "session-c", liked); err != nil {
			t.Fatalf("SaveLiked failed: %v", err)
		}

		got, err := storage.LoadLiked(ctx, store, "session-c")
		if err != nil {
			t.Fatalf("LoadLiked failed: %v", err)
		}
		if len(got) != 2 || got[0] != liked[0] || got[1] != liked[1] {
			t.Errorf("LoadLiked = %+v, want %+v", got, liked)
		}
	})

	t.Run("Empty liked list is stored as an array", func(t *testing.T) {
		if err := storage.SaveLiked(ctx, store, "session-d", nil); err != nil {
			t.Fatalf("SaveLiked failed: %v", err)
		}
		raw, _, _ := store.Get(ctx, "session-d", storage.LikedKey)
		if string(raw) != "[]" {
			t.Errorf("raw = %q, want []", raw)
		}
	})

	t.Run("Malformed liked list", func(t *testing.T) {
		if err := store.Set(ctx, "session-e", storage.LikedKey, []byte("{not json")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		_, err := storage.LoadLiked(ctx, store, "session-e")
		if !errors.Is(err, storage.ErrMalformed) {
			t.Errorf("err = %v, want ErrMalformed", err)
		}
	})
}
