package ordering

import "time"

// OperationStatus values understood by the Translation Service
type OperationStatus int

const (
	OperationStatusBid OperationStatus = 1
)

// ProgressStatus values understood by the Translation Service
type ProgressStatus int

const (
	ProgressStatusOpen ProgressStatus = 1
)

// TranslationOperation is one unit of assignable translation work, one per
// document part. The Translation Service owns its durable storage; the fields
// below ID are assigned by that service.
type TranslationOperation struct {
	TranslationDocumentPartID    int             `json:"TranslationDocumentPartId"`
	TranslationOperationStatusID OperationStatus `json:"TranslationOperationStatusId"`
	TranslationProgressStatusID  ProgressStatus  `json:"TranslationProgressStatusId"`

	ID            int        `json:"Id,omitempty"`
	TranslatorID  *int       `json:"TranslatorId,omitempty"`
	EditorID      *int       `json:"EditorId,omitempty"`
	ProofReaderID *int       `json:"ProofReaderId,omitempty"`
	CreatedAt     *time.Time `json:"CreatedAt,omitempty"`
}

// NewOpenOperation builds the operation announced for a freshly created part
func NewOpenOperation(partID int) TranslationOperation {
	return TranslationOperation{
		TranslationDocumentPartID:    partID,
		TranslationOperationStatusID: OperationStatusBid,
		TranslationProgressStatusID:  ProgressStatusOpen,
	}
}

// ServiceResultType is the outcome code wrapped around Translation Service responses
type ServiceResultType int

const (
	ServiceResultSuccess ServiceResultType = 1
)

// ServiceResult is the response envelope of the Translation Service
type ServiceResult[T any] struct {
	ServiceResultType ServiceResultType `json:"ServiceResultType"`
	Data              T                 `json:"Data"`
	Message           string            `json:"Message"`
}
