package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GrantCuster/extra-grantcuster-com/server/util"
	storagemedia "github.com/GrantCuster/extra-grantcuster-com/storage/media"
)

// Pipeline runs one upload through stage, classify, derive, and upload. All
// temporary files are removed before Process returns, on every exit path.
type Pipeline struct {
	Stager *Stager
	Store  storagemedia.Store
}

func NewPipeline(stager *Stager, store storagemedia.Store) *Pipeline {
	return &Pipeline{Stager: stager, Store: store}
}

// Result holds the public locations of every stored variant, keyed by role.
type Result struct {
	Kind      Kind
	Locations map[Role]string
}

// Process ingests one upload. Classification happens after staging so the
// unsupported path still has a file to clean up; cleanup failures are logged
// and never mask the pipeline outcome.
func (p *Pipeline) Process(ctx context.Context, mimeType string, originalFilename string, r io.Reader) (*Result, error) {
	staged, err := p.Stager.Stage(r, originalFilename)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	tempPaths := []string{staged.Path}
	defer func() { removeAll(ctx, tempPaths) }()

	kind := Classify(mimeType, staged.Ext)
	if kind == KindUnsupported {
		return nil, ErrUnsupportedMediaType
	}

	variants, deriveErr := Derive(staged, kind)
	for _, v := range variants {
		if v.Temp {
			tempPaths = append(tempPaths, v.Path)
		}
	}
	if deriveErr != nil {
		return nil, fmt.Errorf("derive variants: %w", deriveErr)
	}

	locations := make(map[Role]string, len(variants))
	for _, v := range variants {
		url, err := p.uploadVariant(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("upload %s variant: %w", v.Role, err)
		}
		locations[v.Role] = url
	}

	return &Result{Kind: kind, Locations: locations}, nil
}

func (p *Pipeline) uploadVariant(ctx context.Context, v Variant) (string, error) {
	f, err := os.Open(v.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	return p.Store.Upload(ctx, v.Key, v.ContentType, f, info.Size())
}

// removeAll deletes every path exactly once. Missing files are fine; anything
// else is logged for operator attention but never surfaced to the caller.
func removeAll(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if rl := util.FromContext(ctx); rl != nil {
				rl.Errorf("failed to remove temp file %q: %v", path, err)
			} else {
				log.Printf("failed to remove temp file %q: %v", path, err)
			}
		}
	}
}
