package docsystem

import (
	"context"

	"github.com/google/uuid"

	"dms/internal/domain/models/docsystem"
)

// DocumentPartRepository defines data access for translation document parts
type DocumentPartRepository interface {
	// CreateBatch inserts all parts in one statement and reports the number of
	// rows written. It does not populate IDs; read the batch back for that.
	CreateBatch(ctx context.Context, parts []docsystem.DocumentPart) (int64, error)

	// ListByBatch returns the parts of one partitioning run ordered by ID
	ListByBatch(ctx context.Context, documentID int, batchID uuid.UUID) ([]docsystem.DocumentPart, error)

	GetByID(ctx context.Context, id int) (*docsystem.DocumentPart, error)
}
