package docsystem

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit status labels
const (
	AuditStatusAdded             = "Document Added"
	AuditStatusUpdated           = "Document Updated"
	AuditStatusPartitioned       = "Document Partitioned"
	AuditStatusOrderDetailFailed = "Order Detail Failed"
)

// DocumentAudit is an append-only record of something that happened to a document
type DocumentAudit struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	DocumentID int                `json:"document_id" bson:"DocumentId"`
	Message    string             `json:"message" bson:"Message"`
	Status     string             `json:"status" bson:"Status"`
	Date       time.Time          `json:"date" bson:"Date"`
}
