package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysRepo "dms/internal/domain/repositories/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

// documentService implements the DocumentService interface
type documentService struct {
	translationRepo docsysRepo.TranslationDocumentRepository
	docRepo         docsysRepo.DocumentRepository
	partRepo        docsysRepo.DocumentPartRepository
	auditRepo       docsysRepo.AuditRepository
	extractor       docsysSvc.TextExtractor
	analyzer        docsysSvc.ContentAnalyzer
	fileStore       docsysSvc.FileStore
	logger          *slog.Logger
	now             func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	translationRepo docsysRepo.TranslationDocumentRepository,
	docRepo docsysRepo.DocumentRepository,
	partRepo docsysRepo.DocumentPartRepository,
	auditRepo docsysRepo.AuditRepository,
	extractor docsysSvc.TextExtractor,
	analyzer docsysSvc.ContentAnalyzer,
	fileStore docsysSvc.FileStore,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		translationRepo: translationRepo,
		docRepo:         docRepo,
		partRepo:        partRepo,
		auditRepo:       auditRepo,
		extractor:       extractor,
		analyzer:        analyzer,
		fileStore:       fileStore,
		logger:          logger,
		now:             time.Now,
	}
}

// AddTranslationDocument stores a translation document. Counts left at zero
// are computed from the file.
func (s *documentService) AddTranslationDocument(ctx context.Context, req *docsysSvc.AddDocumentRequest) (*models.TranslationDocument, error) {
	if err := validateAddRequest(req); err != nil {
		return nil, err
	}

	path, err := s.fileStore.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	doc := &models.TranslationDocument{
		Document: models.Document{
			Path:      path,
			Name:      strings.TrimSpace(req.Name),
			Active:    true,
			CreatedAt: s.now().UTC(),
			CreatedBy: req.ActorID,
		},
		PageCount:           req.PageCount,
		CharCount:           req.CharCount,
		CharCountWithSpaces: req.CharCountWithSpaces,
	}

	if doc.PageCount == 0 && doc.CharCount == 0 && doc.CharCountWithSpaces == 0 {
		analysis, err := s.AnalyzeDocument(ctx, doc.Path)
		if err != nil {
			return nil, err
		}
		doc.PageCount = analysis.PageCount
		doc.CharCount = analysis.CharCount
		doc.CharCountWithSpaces = analysis.CharCountWithSpaces
	}

	if err := s.translationRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, doc.ID, models.AuditStatusAdded,
		fmt.Sprintf("Document with id #%d and name %s added.", doc.ID, doc.Name))

	s.logger.Info("translation document created",
		"id", doc.ID,
		"name", doc.Name,
		"pages", doc.PageCount,
		"char_count", doc.CharCount,
		"created_by", doc.CreatedBy,
	)

	return doc, nil
}

// EditTranslationDocument applies a partial update. A new path re-analyzes the file.
func (s *documentService) EditTranslationDocument(ctx context.Context, req *docsysSvc.EditDocumentRequest) (*models.TranslationDocument, error) {
	if err := validateEditRequest(req); err != nil {
		return nil, err
	}

	if req.Path != nil {
		path, err := s.fileStore.Resolve(*req.Path)
		if err != nil {
			return nil, err
		}
		req.Path = &path
	}

	doc, err := s.translationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	pathChanged := applyEdit(&doc.Document, req, s.now().UTC())
	if pathChanged {
		analysis, err := s.AnalyzeDocument(ctx, doc.Path)
		if err != nil {
			return nil, err
		}
		doc.PageCount = analysis.PageCount
		doc.CharCount = analysis.CharCount
		doc.CharCountWithSpaces = analysis.CharCountWithSpaces
	}

	if err := s.translationRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, doc.ID, models.AuditStatusUpdated,
		fmt.Sprintf("Document with id #%d and name %s updated.", doc.ID, doc.Name))

	s.logger.Info("translation document updated", "id", doc.ID, "path_changed", pathChanged, "updated_by", req.ActorID)

	return doc, nil
}

// GetTranslationDocument retrieves a translation document
func (s *documentService) GetTranslationDocument(ctx context.Context, id int) (*models.TranslationDocument, error) {
	return s.translationRepo.GetByID(ctx, id)
}

// ListTranslationDocuments lists all translation documents
func (s *documentService) ListTranslationDocuments(ctx context.Context) ([]models.TranslationDocument, error) {
	return s.translationRepo.List(ctx)
}

// AddDocument stores a general or user document
func (s *documentService) AddDocument(ctx context.Context, kind models.DocumentKind, req *docsysSvc.AddDocumentRequest) (*models.Document, error) {
	if err := validateKind(string(kind)); err != nil {
		return nil, err
	}
	if err := validateAddRequest(req); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Path:      strings.TrimSpace(req.Path),
		Name:      strings.TrimSpace(req.Name),
		Active:    true,
		CreatedAt: s.now().UTC(),
		CreatedBy: req.ActorID,
	}

	if err := s.docRepo.Create(ctx, kind, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created", "kind", kind, "id", doc.ID, "name", doc.Name, "created_by", doc.CreatedBy)

	return doc, nil
}

// EditDocument applies a partial update to a general or user document
func (s *documentService) EditDocument(ctx context.Context, kind models.DocumentKind, req *docsysSvc.EditDocumentRequest) (*models.Document, error) {
	if err := validateKind(string(kind)); err != nil {
		return nil, err
	}
	if err := validateEditRequest(req); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, kind, req.ID)
	if err != nil {
		return nil, err
	}

	applyEdit(doc, req, s.now().UTC())

	if err := s.docRepo.Update(ctx, kind, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "kind", kind, "id", doc.ID, "updated_by", req.ActorID)

	return doc, nil
}

// GetDocument retrieves a general or user document
func (s *documentService) GetDocument(ctx context.Context, kind models.DocumentKind, id int) (*models.Document, error) {
	if err := validateKind(string(kind)); err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, kind, id)
}

// ListDocuments lists general or user documents
func (s *documentService) ListDocuments(ctx context.Context, kind models.DocumentKind) ([]models.Document, error) {
	if err := validateKind(string(kind)); err != nil {
		return nil, err
	}
	return s.docRepo.List(ctx, kind)
}

// SaveFile stores an uploaded file
func (s *documentService) SaveFile(ctx context.Context, filename string, content io.Reader) (string, error) {
	return s.fileStore.Save(ctx, filename, content)
}

// AnalyzeDocument extracts a stored file and counts its characters
func (s *documentService) AnalyzeDocument(ctx context.Context, path string) (*models.DocumentAnalysis, error) {
	path, err := s.fileStore.Resolve(path)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Error("analyze document failed",
			"operation", "extract",
			"path", path,
			"error", err,
			"inner_error", domain.InnerError(err),
		)
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	return &models.DocumentAnalysis{
		FilePath:            path,
		PageCount:           extracted.PageCount,
		CharCount:           s.analyzer.CountCharacters(extracted.Text, true),
		CharCountWithSpaces: s.analyzer.CountCharacters(extracted.Text, false),
	}, nil
}

// GetDocumentPart retrieves a single document part
func (s *documentService) GetDocumentPart(ctx context.Context, id int) (*models.DocumentPart, error) {
	return s.partRepo.GetByID(ctx, id)
}

// GetDocumentAudits returns a document's audit trail
func (s *documentService) GetDocumentAudits(ctx context.Context, documentID int) ([]models.DocumentAudit, error) {
	if documentID <= 0 {
		return nil, &domain.ValidationError{Message: "document id must be positive"}
	}
	return s.auditRepo.ListByDocument(ctx, documentID)
}

// applyEdit copies the set fields of req onto doc and reports whether the path changed
func applyEdit(doc *models.Document, req *docsysSvc.EditDocumentRequest, now time.Time) bool {
	pathChanged := false
	if req.Path != nil {
		newPath := strings.TrimSpace(*req.Path)
		pathChanged = newPath != doc.Path
		doc.Path = newPath
	}
	if req.Name != nil {
		doc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		doc.Active = *req.Active
	}

	actor := req.ActorID
	doc.UpdatedAt = &now
	doc.UpdatedBy = &actor
	return pathChanged
}

func (s *documentService) writeAudit(ctx context.Context, documentID int, status, message string) {
	audit := &models.DocumentAudit{
		DocumentID: documentID,
		Message:    message,
		Status:     status,
		Date:       s.now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Warn("failed to write document audit", "document_id", documentID, "status", status, "error", err)
	}
}
