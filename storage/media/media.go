package media

import (
	"context"
	"io"
	"time"
)

// Object describes one durably stored media object.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
	Url          string    `json:"url"`
}

// Store is the durable object storage the pipeline uploads into and the
// cross-post dispatcher reads back out of. Upload is idempotent per key:
// re-uploading a key overwrites the previous object.
type Store interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context) ([]Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
