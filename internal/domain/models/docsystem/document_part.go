package docsystem

import (
	"time"

	"github.com/google/uuid"
)

// DocumentPart is a contiguous span of a translation document's extracted text,
// assignable to one translator. Parts are created in batches by partitioning and
// never edited afterwards.
type DocumentPart struct {
	ID                    int       `json:"id" db:"id"`
	TranslationDocumentID int       `json:"translation_document_id" db:"translation_document_id"`
	BatchID               uuid.UUID `json:"batch_id" db:"batch_id"`
	Path                  string    `json:"path" db:"path"` // Denormalized from the document
	Content               string    `json:"content" db:"content"`
	CharCount             int       `json:"char_count" db:"char_count"`
	CharCountWithSpaces   int       `json:"char_count_with_spaces" db:"char_count_with_spaces"`
	Active                bool      `json:"active" db:"active"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	CreatedBy             int       `json:"created_by" db:"created_by"`
}
