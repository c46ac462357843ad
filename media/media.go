// Package media implements the upload ingestion pipeline: an uploaded file is
// staged to a scoped temp directory, classified by declared MIME type and
// extension, expanded into presentation variants, pushed to the object store,
// and every temporary artifact is removed before the request completes.
package media

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindUnsupported Kind = iota
	KindStaticImage
	KindAnimatedImage
	KindVideo
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindStaticImage:
		return "static-image"
	case KindAnimatedImage:
		return "animated-image"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "unsupported"
	}
}

var ErrUnsupportedMediaType = errors.New("unsupported media type")

// animatedExt is the one extension treated as animated regardless of the
// declared MIME type.
const animatedExt = ".gif"

// Classify selects the processing strategy for an upload. The extension wins
// over the MIME type for animated images: browsers commonly declare gifs as
// plain image/gif or even image/png after re-encoding.
func Classify(mimeType string, ext string) Kind {
	ext = strings.ToLower(ext)
	mimeType = strings.ToLower(mimeType)

	switch {
	case ext == animatedExt:
		return KindAnimatedImage
	case strings.HasPrefix(mimeType, "image/"):
		return KindStaticImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	default:
		return KindUnsupported
	}
}
