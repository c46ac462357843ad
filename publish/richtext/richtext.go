// Package richtext detects facets (links, mentions) in post text for
// platforms whose rich-text model requires explicit byte-indexed annotations.
package richtext

import (
	"regexp"
	"strings"
)

// Facet annotates a byte span of UTF-8 post text with one feature.
type Facet struct {
	Index    ByteSlice `json:"index"`
	Features []Feature `json:"features"`
}

type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

type Feature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
	DID  string `json:"did,omitempty"`
}

const (
	featureLink    = "app.bsky.richtext.facet#link"
	featureMention = "app.bsky.richtext.facet#mention"
)

var (
	linkPattern    = regexp.MustCompile(`https?://[^\s]+`)
	mentionPattern = regexp.MustCompile(`(?:^|\s)(@[a-zA-Z0-9][a-zA-Z0-9.-]*)`)
)

// HandleResolver maps a mention handle (without the @) to a platform
// identity. Returning an error drops the mention facet.
type HandleResolver func(handle string) (did string, err error)

// Detect finds link and mention facets in text. Regexp indices are byte
// offsets, which is exactly what the facet model wants.
func Detect(text string, resolve HandleResolver) []Facet {
	facets := DetectLinks(text)
	facets = append(facets, DetectMentions(text, resolve)...)
	return facets
}

func DetectLinks(text string) []Facet {
	var facets []Facet

	for _, loc := range linkPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]

		// Trailing sentence punctuation is not part of the link.
		uri := strings.TrimRight(text[start:end], ".,;:!?)")
		end = start + len(uri)
		if uri == "" {
			continue
		}

		facets = append(facets, Facet{
			Index:    ByteSlice{ByteStart: start, ByteEnd: end},
			Features: []Feature{{Type: featureLink, URI: uri}},
		})
	}

	return facets
}

func DetectMentions(text string, resolve HandleResolver) []Facet {
	if resolve == nil {
		return nil
	}

	var facets []Facet

	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		handle := strings.TrimPrefix(text[start:end], "@")
		handle = strings.TrimRight(handle, ".")
		end = start + 1 + len(handle)

		// Bare words like "@here" are not platform handles.
		if !strings.Contains(handle, ".") {
			continue
		}

		did, err := resolve(handle)
		if err != nil || did == "" {
			continue
		}

		facets = append(facets, Facet{
			Index:    ByteSlice{ByteStart: start, ByteEnd: end},
			Features: []Feature{{Type: featureMention, DID: did}},
		})
	}

	return facets
}
