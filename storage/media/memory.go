package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// MemoryMediaStore keeps objects in a map. It backs the "memory" strategy for
// local development and doubles as the store fake in tests.
type MemoryMediaStore struct {
	publicBase string
	mu         sync.RWMutex
	objects    map[string]memoryObject

	// FailUploads makes every Upload return an error; used to exercise
	// pipeline failure paths.
	FailUploads bool
}

type memoryObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

func NewMemoryMediaStore(publicBase string) *MemoryMediaStore {
	return &MemoryMediaStore{
		publicBase: publicBase,
		objects:    map[string]memoryObject{},
	}
}

func (ms *MemoryMediaStore) Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	if ms.FailUploads {
		return "", fmt.Errorf("memory store rejecting uploads")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read object bytes: %w", err)
	}

	ms.mu.Lock()
	ms.objects[key] = memoryObject{
		data:        data,
		contentType: contentType,
		modified:    time.Now(),
	}
	ms.mu.Unlock()

	return ms.PublicURL(key), nil
}

func (ms *MemoryMediaStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	obj, ok := ms.objects[key]
	ms.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no object stored under key %q", key)
	}

	return bytes.Clone(obj.data), nil
}

func (ms *MemoryMediaStore) List(ctx context.Context) ([]Object, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	objects := make([]Object, 0, len(ms.objects))
	for key, obj := range ms.objects {
		objects = append(objects, Object{
			Key:          key,
			Size:         int64(len(obj.data)),
			ContentType:  obj.contentType,
			LastModified: obj.modified,
			Url:          ms.PublicURL(key),
		})
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	return objects, nil
}

func (ms *MemoryMediaStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.objects, key)
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryMediaStore) PublicURL(key string) string {
	return ms.publicBase + "/" + key
}

// ContentType reports the stored content type for a key; test helper.
func (ms *MemoryMediaStore) ContentType(key string) string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.objects[key].contentType
}
