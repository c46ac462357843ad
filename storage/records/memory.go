package records

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GrantCuster/extra-grantcuster-com/server/util"
)

// MemoryRecordStore keeps posts in a map; the "memory" strategy and the test
// double.
type MemoryRecordStore struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[string]Post
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{nextID: 1, posts: map[string]Post{}}
}

func (ms *MemoryRecordStore) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	now := time.Now()

	slug := p.Slug
	if slug == "" {
		slug = util.PostSlug(p.Title, now)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	post := Post{
		ID:        ms.nextID,
		Title:     p.Title,
		Content:   p.Content,
		Slug:      slug,
		Tags:      append([]string(nil), p.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	ms.nextID++
	ms.posts[slug] = post

	return &post, nil
}

func (ms *MemoryRecordStore) GetPost(ctx context.Context, slug string) (*Post, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	post, ok := ms.posts[slug]
	if !ok {
		return nil, ErrNotFound
	}

	return &post, nil
}

func (ms *MemoryRecordStore) ListPosts(ctx context.Context) ([]Post, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	posts := make([]Post, 0, len(ms.posts))
	for _, p := range ms.posts {
		posts = append(posts, p)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}
