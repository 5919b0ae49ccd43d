package ordering

import (
	"context"

	"dms/internal/domain/models/ordering"
)

// TranslationClient talks to the Translation Service
type TranslationClient interface {
	// SaveTranslationOperations persists ops remotely and returns them with
	// server-assigned fields. Any failure is reported as domain.ErrUpstream.
	SaveTranslationOperations(ctx context.Context, ops []ordering.TranslationOperation) ([]ordering.TranslationOperation, error)
}
