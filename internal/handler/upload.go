package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"dms/internal/domain"
	docsysSvc "dms/internal/domain/services/docsystem"
	"dms/internal/httputil"
)

// UploadHandler stores uploaded files and analyzes them
type UploadHandler struct {
	docService    docsysSvc.DocumentService
	maxUploadSize int64
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(docService docsysSvc.DocumentService, maxUploadSize int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		docService:    docService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// UploadTranslationDocument stores the first file of a multipart body and returns its analysis
// POST /api/documentapi/uploadTranslationDocument
func (h *UploadHandler) UploadTranslationDocument(w http.ResponseWriter, r *http.Request) {
	path, err := h.saveFirstFile(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	analysis, err := h.docService.AnalyzeDocument(r.Context(), path)
	if err != nil {
		h.logger.Warn("uploaded document could not be analyzed", "path", path, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analysis)
}

// UploadDocument stores the first file of a multipart body and returns its path
// POST /api/documentapi/uploadDocument
func (h *UploadHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	path, err := h.saveFirstFile(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"path": path})
}

// AnalyzeDocument reports page and character counts for a stored file
// GET /api/documentapi/analyzeDocument?fileFullPath=
func (h *UploadHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("fileFullPath")
	if path == "" {
		httputil.RespondError(w, http.StatusBadRequest, "query parameter fileFullPath is required")
		return
	}

	analysis, err := h.docService.AnalyzeDocument(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analysis)
}

// saveFirstFile streams the first file part of a multipart body into the file store
func (h *UploadHandler) saveFirstFile(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.ContentLength > h.maxUploadSize {
		return "", &http.MaxBytesError{Limit: h.maxUploadSize}
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	reader, err := r.MultipartReader()
	if err != nil {
		return "", &domain.ValidationError{Message: "multipart body required"}
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return "", &domain.ValidationError{Message: "no file in upload"}
		}
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return "", err
			}
			return "", &domain.ValidationError{Message: "malformed multipart body"}
		}

		if part.FileName() == "" {
			part.Close()
			continue
		}

		path, err := h.docService.SaveFile(r.Context(), part.FileName(), part)
		part.Close()
		if err != nil {
			return "", err
		}
		return path, nil
	}
}
