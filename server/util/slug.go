package util

import (
	"time"

	"github.com/gosimple/slug"
)

// PostSlug builds the default slug for a post record: a timestamp-formatted
// string, suffixed with a normalized fragment of the title when one exists.
func PostSlug(title string, now time.Time) string {
	s := now.Format("20060102150405")

	if title != "" {
		// Titles may carry markup; reduce to text before slugifying.
		fragment := slug.Make(HtmlToText(title, 8))
		if fragment != "" {
			s += "-" + fragment
		}
	}

	return s
}
