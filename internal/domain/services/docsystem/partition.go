package docsystem

import (
	"context"

	"dms/internal/domain/models/docsystem"
)

// PartitionService splits a translation document into persisted parts
type PartitionService interface {
	// Partition extracts the document's text, splits it into partCount parts
	// and stores them atomically as one batch. Parts are returned ordered by ID.
	// Every call creates a new batch.
	Partition(ctx context.Context, documentID, partCount, actorID int) ([]docsystem.DocumentPart, error)
}
