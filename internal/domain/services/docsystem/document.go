package docsystem

import (
	"context"
	"io"

	"dms/internal/domain/models/docsystem"
)

// DocumentService handles document metadata, uploads and audits
type DocumentService interface {
	AddTranslationDocument(ctx context.Context, req *AddDocumentRequest) (*docsystem.TranslationDocument, error)
	EditTranslationDocument(ctx context.Context, req *EditDocumentRequest) (*docsystem.TranslationDocument, error)
	GetTranslationDocument(ctx context.Context, id int) (*docsystem.TranslationDocument, error)
	ListTranslationDocuments(ctx context.Context) ([]docsystem.TranslationDocument, error)

	// AddDocument, EditDocument, GetDocument and ListDocuments serve the
	// general and user kinds
	AddDocument(ctx context.Context, kind docsystem.DocumentKind, req *AddDocumentRequest) (*docsystem.Document, error)
	EditDocument(ctx context.Context, kind docsystem.DocumentKind, req *EditDocumentRequest) (*docsystem.Document, error)
	GetDocument(ctx context.Context, kind docsystem.DocumentKind, id int) (*docsystem.Document, error)
	ListDocuments(ctx context.Context, kind docsystem.DocumentKind) ([]docsystem.Document, error)

	// SaveFile stores an upload under a fresh name and returns its full path
	SaveFile(ctx context.Context, filename string, content io.Reader) (string, error)

	// AnalyzeDocument extracts a stored file and reports its page and character counts
	AnalyzeDocument(ctx context.Context, path string) (*docsystem.DocumentAnalysis, error)

	GetDocumentPart(ctx context.Context, id int) (*docsystem.DocumentPart, error)
	GetDocumentAudits(ctx context.Context, documentID int) ([]docsystem.DocumentAudit, error)
}

// AddDocumentRequest represents a document creation request
type AddDocumentRequest struct {
	ActorID int    `json:"-"` // Set by handler from auth context
	Path    string `json:"path"`
	Name    string `json:"name"`

	// Translation documents only. Left zero, they are computed from the file.
	PageCount           int `json:"page_count,omitempty"`
	CharCount           int `json:"char_count,omitempty"`
	CharCountWithSpaces int `json:"char_count_with_spaces,omitempty"`
}

// EditDocumentRequest represents a document update request. Nil fields are left unchanged.
type EditDocumentRequest struct {
	ActorID int     `json:"-"`
	ID      int     `json:"id"`
	Path    *string `json:"path,omitempty"`
	Name    *string `json:"name,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// FileStore keeps uploaded files where the extractor can read them
type FileStore interface {
	// Save writes content under a fresh unique name that keeps the
	// extension of filename, returning the full path
	Save(ctx context.Context, filename string, content io.Reader) (string, error)

	// Resolve returns path as a clean absolute path inside the store, or a
	// validation error when it points anywhere else
	Resolve(path string) (string, error)
}
