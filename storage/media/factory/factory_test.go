package factory

import (
	"context"
	"io"
	"testing"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/storage/media"
)

type stubStore struct{}

func (stubStore) Upload(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", nil
}
func (stubStore) Fetch(context.Context, string) ([]byte, error) { return nil, nil }
func (stubStore) List(context.Context) ([]media.Object, error) { return nil, nil }
func (stubStore) Delete(context.Context, string) error { return nil }
func (stubStore) PublicURL(key string) string { return key }

func TestCreate_UsesRegisteredFactory(t *testing.T) {
	Register("stub", func(cfg *config.Media) (media.Store, error) {
		return stubStore{}, nil
	})

	store, err := Create(&config.Media{Strategy: "stub"})
	if err != nil {
		t.Fatalf("expected store, got error %v", err)
	}
	if _, ok := store.(stubStore); !ok {
		t.Fatalf("unexpected store type: %T", store)
	}
}

func TestCreate_UnknownStrategy(t *testing.T) {
	if _, err := Create(&config.Media{Strategy: "does-not-exist"}); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestCreate_Memory(t *testing.T) {
	store, err := Create(&config.Media{Strategy: "memory"})
	if err != nil {
		t.Fatalf("expected store, got error %v", err)
	}
	if _, ok := store.(*media.MemoryMediaStore); !ok {
		t.Fatalf("unexpected store type: %T", store)
	}
}

func TestCreate_FilesystemRequiresConfig(t *testing.T) {
	if _, err := Create(&config.Media{Strategy: "filesystem"}); err == nil {
		t.Fatalf("expected error when filesystem config is missing")
	}
}
