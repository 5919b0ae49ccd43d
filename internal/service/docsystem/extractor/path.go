package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"dms/internal/domain"
)

// ResolvePath returns path as a clean absolute path inside root. Relative
// paths are taken relative to root. A path that leaves root, or names root
// itself, is a validation error.
func ResolvePath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	original := path
	path = strings.TrimSpace(path)
	if path == "" {
		return "", &domain.ValidationError{Message: "file path is required"}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == "." || !filepath.IsLocal(rel) {
		return "", &domain.ValidationError{Message: fmt.Sprintf("file path %q is outside the upload directory", original)}
	}

	return path, nil
}
