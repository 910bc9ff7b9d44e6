package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
)

// allowedExtensions maps accepted image extensions to their canonical form.
// Anything else is rejected before touching the disk.
var allowedExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".gif":  ".gif",
	".webp": ".webp",
	".bmp":  ".bmp",
}

// Store saves order photos on local disk under random names and hands back
// the public URL path they are served from.
type Store struct {
	dir      string
	maxBytes int64
	baseURL  string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxBytes int64, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory uploaded files live in.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores the uploaded file and returns its public URL.
func (s *Store) Save(filename string, size int64, src io.Reader) (string, error) {
	if size > s.maxBytes {
		return "", domainErrors.Validation("file too large")
	}
	ext, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", domainErrors.Validation("unsupported image type")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against clients lying about the declared size.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(dst.Name())
		return "", domainErrors.Validation("file too large")
	}

	return s.baseURL + "/uploads/" + name, nil
}
