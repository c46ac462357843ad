package publish

import (
	"context"
	"errors"
	"strings"
	"testing"

	storagemedia "github.com/GrantCuster/extra-grantcuster-com/storage/media"
)

func TestKeyForStripsKnownPrefixes(t *testing.T) {
	resolver := NewSourceResolver(nil, []string{
		"https://uploads.example.com",
		"https://uploads.us-east-1.example.com/",
	})

	cases := []struct {
		location string
		want     string
	}{
		{"https://uploads.example.com/2024/pic.jpg", "2024/pic.jpg"},
		{"https://uploads.us-east-1.example.com/old/pic.jpg", "old/pic.jpg"},
	}

	for _, c := range cases {
		key, err := resolver.KeyFor(c.location)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.location, err)
		}
		if key != c.want {
			t.Fatalf("KeyFor(%q) = %q, want %q", c.location, key, c.want)
		}
		if strings.Contains(key, "example.com") {
			t.Fatalf("prefix remnant in key %q", key)
		}
	}
}

func TestKeyForUnknownHost(t *testing.T) {
	resolver := NewSourceResolver(nil, []string{"https://uploads.example.com"})

	if _, err := resolver.KeyFor("https://elsewhere.example.org/pic.jpg"); !errors.Is(err, ErrUnknownSourceHost) {
		t.Fatalf("expected ErrUnknownSourceHost, got %v", err)
	}
}

func TestResolveFetchesBytes(t *testing.T) {
	store := storagemedia.NewMemoryMediaStore("https://uploads.example.com")
	if _, err := store.Upload(context.Background(), "pic.jpg", "image/jpeg", strings.NewReader("thumb"), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolver := NewSourceResolver(store, []string{"https://uploads.example.com"})

	data, err := resolver.Resolve(context.Background(), "https://uploads.example.com/pic.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "thumb" {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestResolveMissingKey(t *testing.T) {
	store := storagemedia.NewMemoryMediaStore("https://uploads.example.com")
	resolver := NewSourceResolver(store, []string{"https://uploads.example.com"})

	if _, err := resolver.Resolve(context.Background(), "https://uploads.example.com/missing.jpg"); !errors.Is(err, ErrSourceFetch) {
		t.Fatalf("expected ErrSourceFetch, got %v", err)
	}
}
