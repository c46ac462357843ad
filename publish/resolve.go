package publish

import (
	"context"
	"fmt"
	"strings"

	storagemedia "github.com/GrantCuster/extra-grantcuster-com/storage/media"
)

// SourceResolver turns a stored object's public location back into raw bytes.
// Objects uploaded before a storage migration may carry an older host prefix,
// so every configured prefix is tried.
type SourceResolver struct {
	store    storagemedia.Store
	prefixes []string
}

func NewSourceResolver(store storagemedia.Store, prefixes []string) *SourceResolver {
	normalized := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		normalized = append(normalized, strings.TrimSuffix(p, "/")+"/")
	}

	return &SourceResolver{store: store, prefixes: normalized}
}

// KeyFor strips whichever known storage-host prefix matches, leaving the bare
// object key.
func (sr *SourceResolver) KeyFor(location string) (string, error) {
	for _, prefix := range sr.prefixes {
		if strings.HasPrefix(location, prefix) {
			return strings.TrimPrefix(location, prefix), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSourceHost, location)
}

// Resolve fetches the raw bytes behind a stored object's public location.
func (sr *SourceResolver) Resolve(ctx context.Context, location string) ([]byte, error) {
	key, err := sr.KeyFor(location)
	if err != nil {
		return nil, err
	}

	data, err := sr.store.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFetch, err)
	}

	return data, nil
}
