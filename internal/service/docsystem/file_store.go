package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
	"dms/internal/service/docsystem/extractor"
)

// localFileStore writes uploads into a directory on local disk
type localFileStore struct {
	dir    string
	logger *slog.Logger
}

// NewLocalFileStore creates a file store rooted at dir
func NewLocalFileStore(dir string, logger *slog.Logger) docsysSvc.FileStore {
	return &localFileStore{dir: dir, logger: logger}
}

// Save writes content to {dir}/{uuid}.{ext}
func (s *localFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	ext := models.Extension(filename)
	if ext == "" {
		return "", &domain.ValidationError{Message: "uploaded file has no extension"}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("resolve upload directory: %w", err)
	}
	path := filepath.Join(absDir, uuid.New().String()+"."+ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	s.logger.Info("file uploaded", "original_name", filename, "path", path, "bytes", written)
	return path, nil
}

// Resolve confines path to the upload directory
func (s *localFileStore) Resolve(path string) (string, error) {
	return extractor.ResolvePath(s.dir, path)
}
