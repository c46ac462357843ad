// Package publish re-posts stored content to external social platforms. Each
// platform is its own capability with its own trust model; the only thing
// they share is the Publish operation.
package publish

import (
	"context"
	"errors"
)

var (
	ErrUnknownSourceHost = errors.New("location does not match any known storage host")
	ErrSourceFetch       = errors.New("source fetch failed")
	ErrPlatformAuth      = errors.New("platform authentication failed")
	ErrPlatformPost      = errors.New("platform post failed")
)

// OutboundPost is one composed cross-post. It is built per dispatch and never
// persisted.
type OutboundPost struct {
	Text  string
	Embed *LinkEmbed // honored only by publishers with link-preview support
}

// LinkEmbed describes a link preview: the linked page plus a thumbnail that
// lives in our object store and gets re-hosted into the platform's blob
// namespace during dispatch.
type LinkEmbed struct {
	URL         string
	Title       string
	Description string
	ThumbURL    string
}

type Publisher interface {
	Name() string
	Publish(ctx context.Context, post OutboundPost) error
}
