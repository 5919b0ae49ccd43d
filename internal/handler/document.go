package handler

import (
	"log/slog"
	"net/http"

	"dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
	"dms/internal/httputil"
)

// DocumentHandler handles document metadata HTTP requests
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// AddTranslationDocument creates a translation document
// POST /api/documentapi/addTranslationDocument
func (h *DocumentHandler) AddTranslationDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.AddDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ActorID = httputil.GetActorID(r)

	doc, err := h.docService.AddTranslationDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// EditTranslationDocument updates a translation document
// POST /api/documentapi/editTranslationDocument
func (h *DocumentHandler) EditTranslationDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.EditDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ActorID = httputil.GetActorID(r)

	doc, err := h.docService.EditTranslationDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListTranslationDocuments lists translation documents
// GET /api/documentapi/getTranslationDocuments
func (h *DocumentHandler) ListTranslationDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListTranslationDocuments(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetTranslationDocument retrieves a translation document by ID
// GET /api/documentapi/getTranslationDocument/{id}
func (h *DocumentHandler) GetTranslationDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	doc, err := h.docService.GetTranslationDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// AddDocument returns the create handler for a general or user document kind
// POST /api/documentapi/add{General,User}Document
func (h *DocumentHandler) AddDocument(kind docsystem.DocumentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req docsysSvc.AddDocumentRequest
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.ActorID = httputil.GetActorID(r)

		doc, err := h.docService.AddDocument(r.Context(), kind, &req)
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusCreated, doc)
	}
}

// EditDocument returns the update handler for a general or user document kind
// POST /api/documentapi/edit{General,User}Document
func (h *DocumentHandler) EditDocument(kind docsystem.DocumentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req docsysSvc.EditDocumentRequest
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.ActorID = httputil.GetActorID(r)

		doc, err := h.docService.EditDocument(r.Context(), kind, &req)
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusOK, doc)
	}
}

// ListDocuments returns the list handler for a general or user document kind
// GET /api/documentapi/get{General,User}Documents
func (h *DocumentHandler) ListDocuments(kind docsystem.DocumentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.docService.ListDocuments(r.Context(), kind)
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusOK, docs)
	}
}

// GetDocument returns the lookup handler for a general or user document kind
// GET /api/documentapi/get{General,User}Document/{id}
func (h *DocumentHandler) GetDocument(kind docsystem.DocumentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleError(w, err)
			return
		}

		doc, err := h.docService.GetDocument(r.Context(), kind, id)
		if err != nil {
			handleError(w, err)
			return
		}

		httputil.RespondJSON(w, http.StatusOK, doc)
	}
}

// GetDocumentAudits lists the audit trail of a translation document, newest first
// GET /api/documentapi/getDocumentAudits?documentId=
func (h *DocumentHandler) GetDocumentAudits(w http.ResponseWriter, r *http.Request) {
	documentID, err := queryInt(r, "documentId")
	if err != nil {
		handleError(w, err)
		return
	}

	audits, err := h.docService.GetDocumentAudits(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, audits)
}

// HealthCheck returns service health status
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "dms",
	})
}
