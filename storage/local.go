package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/wildhavenhq/media/model"
)

// ErrPresignUnsupported is returned by providers that cannot mint presigned
// upload URLs.
var ErrPresignUnsupported = errors.New("presigned uploads require an object store provider")

// Local stores files under a base directory, one subdirectory per category.
// Subdirectories are created lazily on first write.
type Local struct {
	BasePath string
}

func NewLocal(basePath string) Local {
	if basePath == "" {
		basePath = filepath.Join(os.TempDir(), "uploads")
	}
	return Local{BasePath: basePath}
}

// Save writes to a temp file in the target directory and renames it into
// place, so a crash mid-write never leaves a corrupt file at the final key.
func (l Local) Save(data model.UploadFileData) (string, error) {
	dir := filepath.Join(l.BasePath, path.Dir(data.FileKey))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("staging temp file: %w", err)
	}

	if _, err := io.Copy(tmp, data.File); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", data.FileKey, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing %s: %w", data.FileKey, err)
	}

	final := filepath.Join(l.BasePath, filepath.FromSlash(data.FileKey))
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("renaming into %s: %w", final, err)
	}

	return data.FileKey, nil
}

func (l Local) Delete(fileKey string) error {
	filename := filepath.Join(l.BasePath, filepath.FromSlash(fileKey))
	return os.Remove(filename)
}

// PresignUpload always fails: local mode has no out-of-band write path.
func (l Local) PresignUpload(fileKey, contentType string) (string, error) {
	return "", ErrPresignUnsupported
}
