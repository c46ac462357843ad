package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GrantCuster/extra-grantcuster-com/config"
)

func newTestStore(t *testing.T) *StoreImpl {
	t.Helper()

	store, err := NewFilesystemMediaStore(&config.FilesystemMediaStrategy{
		Path:      t.TempDir(),
		PublicUrl: "https://media.example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return store
}

func TestNewFilesystemMediaStore_NilConfig(t *testing.T) {
	if _, err := NewFilesystemMediaStore(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestUploadAndFetch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.Upload(ctx, "2024/08/pic.jpg", "image/jpeg", strings.NewReader("bytes"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://media.example.com/2024/08/pic.jpg" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := store.Fetch(ctx, "2024/08/pic.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "bytes" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestUploadOverwritesExistingKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upload(ctx, "k.txt", "text/plain", strings.NewReader("one"), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Upload(ctx, "k.txt", "text/plain", strings.NewReader("two"), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := store.Fetch(ctx, "k.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestFetchMissingKey(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Fetch(context.Background(), "nope.jpg"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestList_SortsMostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := store.Upload(ctx, key, "text/plain", strings.NewReader(key), 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Force distinct mtimes regardless of filesystem timestamp resolution.
	now := time.Now()
	for i, key := range []string{"a.txt", "b.txt", "c.txt"} {
		mtime := now.Add(time.Duration(i-3) * time.Minute)
		if err := os.Chtimes(filepath.Join(store.basePath, key), mtime, mtime); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	objects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(objects))
	}
	if objects[0].Key != "c.txt" || objects[2].Key != "a.txt" {
		t.Fatalf("unexpected order: %v, %v, %v", objects[0].Key, objects[1].Key, objects[2].Key)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upload(ctx, "k.txt", "text/plain", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "k.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Fetch(ctx, "k.txt"); err == nil {
		t.Fatalf("expected fetch to fail after delete")
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "k.txt"); err != nil {
		t.Fatalf("unexpected error deleting missing key: %v", err)
	}
}
