package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/storage/media"
	storageutil "github.com/GrantCuster/extra-grantcuster-com/storage/util"
)

// StoreImpl stores media objects in a local directory. Keys map directly to
// paths below the base directory.
type StoreImpl struct {
	basePath  string
	publicURL string
	mu        sync.RWMutex // Protects file operations
}

func NewFilesystemMediaStore(cfg *config.FilesystemMediaStrategy) (*StoreImpl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("filesystem media config is nil")
	}

	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &StoreImpl{
		basePath:  cfg.Path,
		publicURL: storageutil.NormalizeBaseURL(cfg.PublicUrl),
	}, nil
}

func (s *StoreImpl) Upload(ctx context.Context, key string, contentType string, r io.Reader, size int64) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	absPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	outFile, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, r); err != nil {
		// Attempt to clean up partial file
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *StoreImpl) Fetch(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}

	return data, nil
}

func (s *StoreImpl) List(ctx context.Context) ([]media.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var objects []media.Object

	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		objects = append(objects, media.Object{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
			Url:          s.PublicURL(key),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list media directory: %w", err)
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	return objects, nil
}

func (s *StoreImpl) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			// Already gone - consider this successful
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

func (s *StoreImpl) PublicURL(key string) string {
	return s.publicURL + key
}
