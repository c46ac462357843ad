// Package records is the post-record store: blog post rows plus their tag
// associations. It sits outside the media pipeline; handlers call into it as
// an external collaborator.
package records

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("post not found")

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewPost struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Slug    string   `json:"slug"` // optional; derived from timestamp and title when empty
	Tags    []string `json:"tags"`
}

type Store interface {
	CreatePost(ctx context.Context, p NewPost) (*Post, error)
	GetPost(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
}
