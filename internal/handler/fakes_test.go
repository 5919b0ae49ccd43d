package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDocService records the last request and returns canned results
type fakeDocService struct {
	err error

	translationDocs map[int]models.TranslationDocument
	docs            map[models.DocumentKind]map[int]models.Document
	parts           map[int]models.DocumentPart
	audits          map[int][]models.DocumentAudit

	lastAdd   *docsysSvc.AddDocumentRequest
	lastEdit  *docsysSvc.EditDocumentRequest
	lastKind  models.DocumentKind
	savedName string
	savedBody []byte
	analyzed  string
}

func newFakeDocService() *fakeDocService {
	return &fakeDocService{
		translationDocs: map[int]models.TranslationDocument{},
		docs: map[models.DocumentKind]map[int]models.Document{
			models.KindGeneral: {},
			models.KindUser:    {},
		},
		parts:  map[int]models.DocumentPart{},
		audits: map[int][]models.DocumentAudit{},
	}
}

func (s *fakeDocService) AddTranslationDocument(_ context.Context, req *docsysSvc.AddDocumentRequest) (*models.TranslationDocument, error) {
	s.lastAdd = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.TranslationDocument{
		Document:  models.Document{ID: 1, Path: req.Path, Name: req.Name, Active: true, CreatedBy: req.ActorID},
		PageCount: req.PageCount,
	}, nil
}

func (s *fakeDocService) EditTranslationDocument(_ context.Context, req *docsysSvc.EditDocumentRequest) (*models.TranslationDocument, error) {
	s.lastEdit = req
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.translationDocs[req.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation document", ID: req.ID}
	}
	return &doc, nil
}

func (s *fakeDocService) GetTranslationDocument(_ context.Context, id int) (*models.TranslationDocument, error) {
	doc, ok := s.translationDocs[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation document", ID: id}
	}
	return &doc, nil
}

func (s *fakeDocService) ListTranslationDocuments(context.Context) ([]models.TranslationDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	docs := []models.TranslationDocument{}
	for _, d := range s.translationDocs {
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *fakeDocService) AddDocument(_ context.Context, kind models.DocumentKind, req *docsysSvc.AddDocumentRequest) (*models.Document, error) {
	s.lastKind = kind
	s.lastAdd = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Document{ID: 2, Path: req.Path, Name: req.Name, CreatedBy: req.ActorID}, nil
}

func (s *fakeDocService) EditDocument(_ context.Context, kind models.DocumentKind, req *docsysSvc.EditDocumentRequest) (*models.Document, error) {
	s.lastKind = kind
	s.lastEdit = req
	doc, ok := s.docs[kind][req.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: string(kind) + " document", ID: req.ID}
	}
	return &doc, nil
}

func (s *fakeDocService) GetDocument(_ context.Context, kind models.DocumentKind, id int) (*models.Document, error) {
	s.lastKind = kind
	doc, ok := s.docs[kind][id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: string(kind) + " document", ID: id}
	}
	return &doc, nil
}

func (s *fakeDocService) ListDocuments(_ context.Context, kind models.DocumentKind) ([]models.Document, error) {
	s.lastKind = kind
	docs := []models.Document{}
	for _, d := range s.docs[kind] {
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *fakeDocService) SaveFile(_ context.Context, filename string, content io.Reader) (string, error) {
	if models.Extension(filename) == "" {
		return "", &domain.ValidationError{Message: "uploaded file has no extension"}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	s.savedName = filename
	s.savedBody = buf.Bytes()
	return "/uploads/stored." + models.Extension(filename), nil
}

func (s *fakeDocService) AnalyzeDocument(_ context.Context, path string) (*models.DocumentAnalysis, error) {
	s.analyzed = path
	if s.err != nil {
		return nil, s.err
	}
	return &models.DocumentAnalysis{FilePath: path, PageCount: 1, CharCount: 9, CharCountWithSpaces: 10}, nil
}

func (s *fakeDocService) GetDocumentPart(_ context.Context, id int) (*models.DocumentPart, error) {
	part, ok := s.parts[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "document part", ID: id}
	}
	return &part, nil
}

func (s *fakeDocService) GetDocumentAudits(_ context.Context, documentID int) ([]models.DocumentAudit, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.audits[documentID], nil
}

type fakePartitioner struct {
	err       error
	gotDoc    int
	gotCount  int
	gotActor  int
	callCount int
}

func (p *fakePartitioner) Partition(_ context.Context, documentID, partCount, actorID int) ([]models.DocumentPart, error) {
	p.callCount++
	p.gotDoc, p.gotCount, p.gotActor = documentID, partCount, actorID
	if p.err != nil {
		return nil, p.err
	}
	parts := make([]models.DocumentPart, partCount)
	for i := range parts {
		parts[i] = models.DocumentPart{ID: i + 1, TranslationDocumentID: documentID, CreatedBy: actorID}
	}
	return parts, nil
}
