package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dms/internal/config"
	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	"dms/internal/domain/repositories"
	docsysRepo "dms/internal/domain/repositories/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

// partitionService implements the PartitionService interface
type partitionService struct {
	docRepo   docsysRepo.TranslationDocumentRepository
	partRepo  docsysRepo.DocumentPartRepository
	auditRepo docsysRepo.AuditRepository
	txManager repositories.TransactionManager
	extractor docsysSvc.TextExtractor
	analyzer  docsysSvc.ContentAnalyzer
	logger    *slog.Logger
	now       func() time.Time
}

// NewPartitionService creates a new partition service
func NewPartitionService(
	docRepo docsysRepo.TranslationDocumentRepository,
	partRepo docsysRepo.DocumentPartRepository,
	auditRepo docsysRepo.AuditRepository,
	txManager repositories.TransactionManager,
	extractor docsysSvc.TextExtractor,
	analyzer docsysSvc.ContentAnalyzer,
	logger *slog.Logger,
) docsysSvc.PartitionService {
	return &partitionService{
		docRepo:   docRepo,
		partRepo:  partRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		extractor: extractor,
		analyzer:  analyzer,
		logger:    logger,
		now:       time.Now,
	}
}

// Partition splits a translation document into partCount stored parts
func (s *partitionService) Partition(ctx context.Context, documentID, partCount, actorID int) ([]models.DocumentPart, error) {
	if partCount <= 0 {
		return nil, fmt.Errorf("%w: part count must be positive, got %d", domain.ErrInvalidArgument, partCount)
	}
	if partCount > config.MaxPartCount {
		return nil, fmt.Errorf("%w: part count %d exceeds the limit of %d", domain.ErrInvalidArgument, partCount, config.MaxPartCount)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, s.fail("load document", documentID, err)
	}

	extracted, err := s.extractor.Extract(ctx, doc.Path)
	if err != nil {
		return nil, s.fail("extract text", documentID, err)
	}

	spans, err := s.analyzer.Split(extracted.Text, partCount)
	if err != nil {
		return nil, s.fail("split text", documentID, err)
	}

	batchID := uuid.New()
	createdAt := s.now().UTC()
	parts := make([]models.DocumentPart, len(spans))
	for i, span := range spans {
		parts[i] = models.DocumentPart{
			TranslationDocumentID: doc.ID,
			BatchID:               batchID,
			Path:                  doc.Path,
			Content:               span,
			CharCount:             s.analyzer.CountCharacters(span, true),
			CharCountWithSpaces:   s.analyzer.CountCharacters(span, false),
			Active:                true,
			CreatedAt:             createdAt,
			CreatedBy:             actorID,
		}
	}

	var stored []models.DocumentPart
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		inserted, err := s.partRepo.CreateBatch(txCtx, parts)
		if err != nil {
			return err
		}
		if inserted <= 0 {
			return fmt.Errorf("%w: no document parts were inserted", domain.ErrPersistence)
		}

		stored, err = s.partRepo.ListByBatch(txCtx, doc.ID, batchID)
		if err != nil {
			return err
		}
		if len(stored) != len(parts) {
			return fmt.Errorf("%w: inserted %d parts but read back %d", domain.ErrPersistence, len(parts), len(stored))
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("store parts", documentID, err)
	}

	s.writeAudit(ctx, &models.DocumentAudit{
		DocumentID: doc.ID,
		Message:    fmt.Sprintf("Document with id #%d and name %s partitioned as %d parts for translators.", doc.ID, doc.Name, len(stored)),
		Status:     models.AuditStatusPartitioned,
		Date:       createdAt,
	})

	s.logger.Info("document partitioned",
		"document_id", doc.ID,
		"batch_id", batchID,
		"parts", len(stored),
		"pages", extracted.PageCount,
		"created_by", actorID,
	)

	return stored, nil
}

func (s *partitionService) fail(operation string, documentID int, err error) error {
	s.logger.Error("partition failed",
		"operation", operation,
		"document_id", documentID,
		"error", err,
		"inner_error", domain.InnerError(err),
	)
	return fmt.Errorf("partition document %d: %s: %w", documentID, operation, err)
}

// writeAudit records an audit entry. Audit failures never fail the caller.
func (s *partitionService) writeAudit(ctx context.Context, audit *models.DocumentAudit) {
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Warn("failed to write document audit",
			"document_id", audit.DocumentID,
			"status", audit.Status,
			"error", err,
		)
	}
}
