package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StagedFile is the temporary on-disk copy of one upload. It is owned by the
// pipeline invocation that created it and must not outlive the request.
type StagedFile struct {
	Path string
	Name string // time-derived base name, no extension
	Ext  string // original extension, lowercased, with leading dot
}

// Stager writes inbound upload streams into a scoped temp directory.
type Stager struct {
	Dir string
}

func NewStager(dir string) (*Stager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "extra-uploads")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	return &Stager{Dir: dir}, nil
}

// Stage copies r to disk under a collision-resistant name. The name combines
// a nanosecond timestamp with a short random fragment so two uploads landing
// on the same clock tick still get distinct files.
func (s *Stager) Stage(r io.Reader, originalFilename string) (*StagedFile, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
	path := filepath.Join(s.Dir, name+ext)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to finalize staged file: %w", err)
	}

	return &StagedFile{Path: path, Name: name, Ext: ext}, nil
}
