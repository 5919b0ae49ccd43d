package ordering

import (
	"github.com/google/uuid"
)

// Event names double as CloudEvents types and bus routing keys
const (
	EventDocumentPartRequested = "CreateDocumentPartEvent"
	EventOrderDetailCreated    = "OrderDetailCreatedEvent"
)

// DocumentPartRequested asks for a translation document to be partitioned for an order
type DocumentPartRequested struct {
	TranslationDocumentID int       `json:"TranslationDocumentId"`
	PartCount             int       `json:"PartCount"`
	CreatedBy             int       `json:"CreatedBy"`
	OrderID               uuid.UUID `json:"OrderId"`
}

// OrderDetailCreated announces the persisted translation operations of an order
type OrderDetailCreated struct {
	ID                    uuid.UUID              `json:"Id"`
	CreatedBy             int                    `json:"CreatedBy"`
	OrderID               uuid.UUID              `json:"OrderId"`
	TranslationOperations []TranslationOperation `json:"TranslationOperations"`
}
