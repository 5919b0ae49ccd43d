package docsystem

import (
	"context"

	"dms/internal/domain/models/docsystem"
)

// AuditRepository is the append-only audit trail of document events
type AuditRepository interface {
	Create(ctx context.Context, audit *docsystem.DocumentAudit) error

	// ListByDocument returns the audits of one document, newest first
	ListByDocument(ctx context.Context, documentID int) ([]docsystem.DocumentAudit, error)
}
