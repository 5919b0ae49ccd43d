package docsystem

import (
	"context"

	"dms/internal/domain/models/docsystem"
)

// TextExtractor reads the text out of a stored file. The format is decided by
// the file extension alone; unknown extensions yield domain.ErrUnsupportedFormat.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (*docsystem.ExtractedText, error)
}

// DocumentParser is one parsing capability (plain text, paged documents).
// Implementations must be safe for concurrent use.
type DocumentParser interface {
	Parse(ctx context.Context, path string) (*docsystem.ExtractedText, error)

	// Name returns the parser name for logging
	Name() string
}
