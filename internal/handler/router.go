package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"dms/internal/domain/models/docsystem"
	"dms/internal/httputil"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Documents *DocumentHandler
	Uploads   *UploadHandler
	Parts     *PartHandler
}

// NewRouter registers the document API under /api/documentapi. The auth
// middleware guards the API routes only; /health stays open.
func NewRouter(h Handlers, authMiddleware mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(notFound)

	router.HandleFunc("/health", h.Documents.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/documentapi").Subrouter()
	// Subrouters report a method mismatch through their own handler
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}

	// Uploads and analysis
	api.HandleFunc("/uploadTranslationDocument", h.Uploads.UploadTranslationDocument).Methods(http.MethodPost)
	api.HandleFunc("/uploadDocument", h.Uploads.UploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/analyzeDocument", h.Uploads.AnalyzeDocument).Methods(http.MethodGet)

	// Translation documents
	api.HandleFunc("/addTranslationDocument", h.Documents.AddTranslationDocument).Methods(http.MethodPost)
	api.HandleFunc("/editTranslationDocument", h.Documents.EditTranslationDocument).Methods(http.MethodPost)
	api.HandleFunc("/getTranslationDocuments", h.Documents.ListTranslationDocuments).Methods(http.MethodGet)
	api.HandleFunc("/getTranslationDocument/{id}", h.Documents.GetTranslationDocument).Methods(http.MethodGet)

	// General and user documents
	for _, route := range []struct {
		name string
		kind docsystem.DocumentKind
	}{
		{"General", docsystem.KindGeneral},
		{"User", docsystem.KindUser},
	} {
		api.HandleFunc("/add"+route.name+"Document", h.Documents.AddDocument(route.kind)).Methods(http.MethodPost)
		api.HandleFunc("/edit"+route.name+"Document", h.Documents.EditDocument(route.kind)).Methods(http.MethodPost)
		api.HandleFunc("/get"+route.name+"Documents", h.Documents.ListDocuments(route.kind)).Methods(http.MethodGet)
		api.HandleFunc("/get"+route.name+"Document/{id}", h.Documents.GetDocument(route.kind)).Methods(http.MethodGet)
	}

	// Parts and audits
	api.HandleFunc("/getDocumentPartsNormalized", h.Parts.GetDocumentPartsNormalized).Methods(http.MethodGet)
	api.HandleFunc("/getTranslationDocumentPartById", h.Parts.GetTranslationDocumentPart).Methods(http.MethodGet)
	api.HandleFunc("/getDocumentAudits", h.Documents.GetDocumentAudits).Methods(http.MethodGet)

	return router
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusNotFound, "no route for "+r.URL.Path)
}
