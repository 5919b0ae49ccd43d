package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"dms/internal/config"
	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	"dms/internal/domain/models/ordering"
	docsysRepo "dms/internal/domain/repositories/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
	orderingSvc "dms/internal/domain/services/ordering"
)

// Projection turns DocumentPartRequested events into persisted parts,
// translation operations and an OrderDetailCreated event
type Projection struct {
	partitioner docsysSvc.PartitionService
	translation orderingSvc.TranslationClient
	publisher   orderingSvc.Publisher
	audits      docsysRepo.AuditRepository
	guard       orderingSvc.DeliveryGuard // nil disables duplicate detection
	guardTTL    time.Duration
	logger      *slog.Logger
}

// Option configures a Projection
type Option func(*Projection)

// WithDeliveryGuard skips events whose (document, event id) pair was already handled within ttl
func WithDeliveryGuard(guard orderingSvc.DeliveryGuard, ttl time.Duration) Option {
	return func(p *Projection) {
		p.guard = guard
		p.guardTTL = ttl
	}
}

// New creates a projection
func New(
	partitioner docsysSvc.PartitionService,
	translation orderingSvc.TranslationClient,
	publisher orderingSvc.Publisher,
	audits docsysRepo.AuditRepository,
	logger *slog.Logger,
	opts ...Option,
) *Projection {
	p := &Projection{
		partitioner: partitioner,
		translation: translation,
		publisher:   publisher,
		audits:      audits,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle processes one DocumentPartRequested event. Failures are logged here;
// the returned error only tells the bus how to settle the delivery.
func (p *Projection) Handle(ctx context.Context, event orderingSvc.InboundEvent) error {
	logger := p.logger.With("event_id", event.ID, "event_type", event.Type)

	req, err := decodeRequest(event.Data)
	if err != nil {
		logger.Error("invalid part request", "error", err)
		return err
	}

	logger = logger.With("document_id", req.TranslationDocumentID, "order_id", req.OrderID)

	if p.guard != nil {
		claimed, err := p.guard.Claim(ctx, deliveryKey(req, event), p.guardTTL)
		switch {
		case err != nil:
			logger.Warn("delivery guard unavailable, handling event anyway", "error", err)
		case !claimed:
			logger.Info("duplicate delivery skipped")
			return nil
		}
	}

	parts, err := p.partitioner.Partition(ctx, req.TranslationDocumentID, req.PartCount, req.CreatedBy)
	if err != nil {
		logger.Error("partitioning failed",
			"part_count", req.PartCount,
			"error", err,
			"inner_error", domain.InnerError(err),
		)
		p.release(ctx, logger, req, event)
		return err
	}

	ops := make([]ordering.TranslationOperation, len(parts))
	partIDs := make([]int, len(parts))
	for i, part := range parts {
		ops[i] = ordering.NewOpenOperation(part.ID)
		partIDs[i] = part.ID
	}

	saved, err := p.translation.SaveTranslationOperations(ctx, ops)
	if err != nil {
		logger.Error("saving translation operations failed, parts left without operations",
			"orphaned_part_ids", partIDs,
			"error", err,
			"inner_error", domain.InnerError(err),
		)
		p.recordOrphans(ctx, logger, req, partIDs)
		if ctx.Err() != nil {
			p.release(ctx, logger, req, event)
		}
		return err
	}

	created := ordering.OrderDetailCreated{
		ID:                    uuid.New(),
		CreatedBy:             req.CreatedBy,
		OrderID:               req.OrderID,
		TranslationOperations: saved,
	}

	if err := p.publisher.Publish(ctx, ordering.EventOrderDetailCreated, created); err != nil {
		logger.Error("publishing order detail failed",
			"order_detail_id", created.ID,
			"operations", len(saved),
			"error", err,
		)
		if ctx.Err() != nil {
			p.release(ctx, logger, req, event)
		}
		return err
	}

	logger.Info("order detail created",
		"order_detail_id", created.ID,
		"parts", len(parts),
		"operations", len(saved),
	)

	return nil
}

func decodeRequest(data []byte) (*ordering.DocumentPartRequested, error) {
	var req ordering.DocumentPartRequested
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", domain.ErrValidation, err)
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.TranslationDocumentID, validation.Required, validation.Min(1)),
		validation.Field(&req.PartCount, validation.Required, validation.Min(1), validation.Max(config.MaxPartCount)),
		validation.Field(&req.CreatedBy, validation.Required, validation.Min(1)),
		validation.Field(&req.OrderID, validation.By(notNilUUID)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return &req, nil
}

func notNilUUID(value any) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}

// deliveryKey identifies a delivery to the guard. Bare payloads may arrive
// without a message id, so those fall back to the order id.
func deliveryKey(req *ordering.DocumentPartRequested, event orderingSvc.InboundEvent) string {
	if event.ID == "" {
		return fmt.Sprintf("%d:order:%s", req.TranslationDocumentID, req.OrderID)
	}
	return fmt.Sprintf("%d:%s", req.TranslationDocumentID, event.ID)
}

// release drops the delivery claim so a redelivery of a failed or interrupted
// event is handled again. It runs even when ctx is already cancelled.
func (p *Projection) release(ctx context.Context, logger *slog.Logger, req *ordering.DocumentPartRequested, event orderingSvc.InboundEvent) {
	if p.guard == nil {
		return
	}
	if err := p.guard.Release(context.WithoutCancel(ctx), deliveryKey(req, event)); err != nil {
		logger.Warn("failed to release delivery claim", "error", err)
	}
}

// recordOrphans leaves an audit trail for parts that have no translation operations
func (p *Projection) recordOrphans(ctx context.Context, logger *slog.Logger, req *ordering.DocumentPartRequested, partIDs []int) {
	audit := &models.DocumentAudit{
		DocumentID: req.TranslationDocumentID,
		Message: fmt.Sprintf("Translation operations for order %s could not be saved; parts %v have no operations.",
			req.OrderID, partIDs),
		Status: models.AuditStatusOrderDetailFailed,
		Date:   time.Now().UTC(),
	}
	if err := p.audits.Create(ctx, audit); err != nil {
		logger.Warn("failed to write document audit", "status", audit.Status, "error", err)
	}
}

var _ orderingSvc.EventHandler = (*Projection)(nil)
