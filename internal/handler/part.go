package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "dms/internal/domain/services/docsystem"
	"dms/internal/httputil"
)

// PartHandler exposes partitioning and part lookups
type PartHandler struct {
	partitioner docsysSvc.PartitionService
	docService  docsysSvc.DocumentService
	logger      *slog.Logger
}

// NewPartHandler creates a new part handler
func NewPartHandler(partitioner docsysSvc.PartitionService, docService docsysSvc.DocumentService, logger *slog.Logger) *PartHandler {
	return &PartHandler{
		partitioner: partitioner,
		docService:  docService,
		logger:      logger,
	}
}

// GetDocumentPartsNormalized partitions a translation document and returns the new batch
// GET /api/documentapi/getDocumentPartsNormalized?translationDocumentId=&partCount=
func (h *PartHandler) GetDocumentPartsNormalized(w http.ResponseWriter, r *http.Request) {
	documentID, err := queryInt(r, "translationDocumentId")
	if err != nil {
		handleError(w, err)
		return
	}
	partCount, err := queryInt(r, "partCount")
	if err != nil {
		handleError(w, err)
		return
	}

	parts, err := h.partitioner.Partition(r.Context(), documentID, partCount, httputil.GetActorID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, parts)
}

// GetTranslationDocumentPart retrieves one document part
// GET /api/documentapi/getTranslationDocumentPartById?translationDocumentPartId=
func (h *PartHandler) GetTranslationDocumentPart(w http.ResponseWriter, r *http.Request) {
	partID, err := queryInt(r, "translationDocumentPartId")
	if err != nil {
		handleError(w, err)
		return
	}

	part, err := h.docService.GetDocumentPart(r.Context(), partID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, part)
}
