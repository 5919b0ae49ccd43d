package docsystem

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dms/internal/config"
	"dms/internal/domain"
	docsysSvc "dms/internal/domain/services/docsystem"
)

// validateAddRequest validates a document creation request
func validateAddRequest(req *docsysSvc.AddDocumentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ActorID, validation.Required.Error("actor is required")),
		validation.Field(&req.Path, validation.Required, validation.Length(1, config.MaxDocumentPathLength)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxDocumentNameLength)),
		validation.Field(&req.PageCount, validation.Min(0)),
		validation.Field(&req.CharCount, validation.Min(0)),
		validation.Field(&req.CharCountWithSpaces, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// validateEditRequest validates a document update request
func validateEditRequest(req *docsysSvc.EditDocumentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ActorID, validation.Required.Error("actor is required")),
		validation.Field(&req.ID, validation.Required, validation.Min(1)),
		validation.Field(&req.Path, validation.NilOrNotEmpty, validation.Length(1, config.MaxDocumentPathLength)),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, config.MaxDocumentNameLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// validateKind rejects kinds the plain document operations do not serve
func validateKind(kind string) error {
	err := validation.Validate(kind, validation.Required, validation.In("general", "user"))
	if err != nil {
		return fmt.Errorf("%w: document kind %q: %v", domain.ErrValidation, kind, err)
	}
	return nil
}
