package docsystem

import (
	"context"

	"dms/internal/domain/models/docsystem"
)

// TranslationDocumentRepository defines data access for translation documents
type TranslationDocumentRepository interface {
	Create(ctx context.Context, doc *docsystem.TranslationDocument) error

	// GetByID returns domain.ErrNotFound when no row matches
	GetByID(ctx context.Context, id int) (*docsystem.TranslationDocument, error)

	// Update rewrites the mutable columns (path, name, active, counts, updated_*)
	Update(ctx context.Context, doc *docsystem.TranslationDocument) error

	List(ctx context.Context) ([]docsystem.TranslationDocument, error)
}

// DocumentRepository defines data access for the plain document kinds
// (general and user). The kind selects the table.
type DocumentRepository interface {
	Create(ctx context.Context, kind docsystem.DocumentKind, doc *docsystem.Document) error
	GetByID(ctx context.Context, kind docsystem.DocumentKind, id int) (*docsystem.Document, error)
	Update(ctx context.Context, kind docsystem.DocumentKind, doc *docsystem.Document) error
	List(ctx context.Context, kind docsystem.DocumentKind) ([]docsystem.Document, error)
}
