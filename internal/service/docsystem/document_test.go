package docsystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

type documentFixture struct {
	translations *fakeTranslationRepo
	docs         *fakeDocRepo
	parts        *fakePartRepo
	audits       *fakeAuditRepo
	extract      *fakeExtractor
}

func newDocumentFixture(t *testing.T) (*documentFixture, docsysSvc.DocumentService) {
	f := &documentFixture{
		translations: newFakeTranslationRepo(),
		docs:         newFakeDocRepo(),
		parts:        newFakePartRepo(),
		audits:       &fakeAuditRepo{},
		extract: &fakeExtractor{texts: map[string]*models.ExtractedText{
			"/uploads/a.pdf": {Text: "Hello, big world!\n", PageCount: 2},
			"/uploads/b.txt": {Text: "ab cd", PageCount: 1},
		}},
	}
	svc := NewDocumentService(f.translations, f.docs, f.parts, f.audits, f.extract, NewContentAnalyzer(),
		NewLocalFileStore("/uploads", testLogger()), testLogger())
	return f, svc
}

func TestAnalyzeDocument(t *testing.T) {
	_, svc := newDocumentFixture(t)

	got, err := svc.AnalyzeDocument(context.Background(), "/uploads/a.pdf")
	if err != nil {
		t.Fatalf("AnalyzeDocument() error = %v", err)
	}

	want := models.DocumentAnalysis{FilePath: "/uploads/a.pdf", PageCount: 2, CharCount: 13, CharCountWithSpaces: 15}
	if *got != want {
		t.Errorf("AnalyzeDocument() = %+v, want %+v", *got, want)
	}
}

func TestAnalyzeDocument_Errors(t *testing.T) {
	_, svc := newDocumentFixture(t)

	if _, err := svc.AnalyzeDocument(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty path error = %v, want ErrValidation", err)
	}
	if _, err := svc.AnalyzeDocument(context.Background(), "/uploads/x.xlsx"); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("xlsx error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestAddTranslationDocument_ComputesCounts(t *testing.T) {
	f, svc := newDocumentFixture(t)

	doc, err := svc.AddTranslationDocument(context.Background(), &docsysSvc.AddDocumentRequest{
		ActorID: 7,
		Path:    "/uploads/a.pdf",
		Name:    " report.pdf ",
	})
	if err != nil {
		t.Fatalf("AddTranslationDocument() error = %v", err)
	}

	if doc.ID == 0 || doc.Name != "report.pdf" || !doc.Active || doc.CreatedBy != 7 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.PageCount != 2 || doc.CharCount != 13 || doc.CharCountWithSpaces != 15 {
		t.Errorf("counts = %d/%d/%d, want 2/13/15", doc.PageCount, doc.CharCount, doc.CharCountWithSpaces)
	}

	if len(f.audits.audits) != 1 || f.audits.audits[0].Status != models.AuditStatusAdded {
		t.Errorf("audits = %+v, want one %q", f.audits.audits, models.AuditStatusAdded)
	}
}

func TestAddTranslationDocument_KeepsProvidedCounts(t *testing.T) {
	f, svc := newDocumentFixture(t)

	doc, err := svc.AddTranslationDocument(context.Background(), &docsysSvc.AddDocumentRequest{
		ActorID: 7, Path: "/uploads/elsewhere.docx", Name: "x.docx", PageCount: 4, CharCount: 100, CharCountWithSpaces: 120,
	})
	if err != nil {
		t.Fatalf("AddTranslationDocument() error = %v", err)
	}
	if doc.PageCount != 4 || doc.CharCount != 100 {
		t.Errorf("provided counts were overwritten: %+v", doc)
	}
	if f.extract.calls != 0 {
		t.Error("file should not be analyzed when counts are supplied")
	}
}

func TestAddTranslationDocument_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  docsysSvc.AddDocumentRequest
	}{
		{"missing actor", docsysSvc.AddDocumentRequest{Path: "/uploads/a.pdf", Name: "a"}},
		{"missing path", docsysSvc.AddDocumentRequest{ActorID: 1, Name: "a"}},
		{"missing name", docsysSvc.AddDocumentRequest{ActorID: 1, Path: "/uploads/a.pdf"}},
		{"name too long", docsysSvc.AddDocumentRequest{ActorID: 1, Path: "/uploads/a.pdf", Name: strings.Repeat("n", 256)}},
		{"negative count", docsysSvc.AddDocumentRequest{ActorID: 1, Path: "/uploads/a.pdf", Name: "a", CharCount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := newDocumentFixture(t)
			req := tt.req
			_, err := svc.AddTranslationDocument(context.Background(), &req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
			if len(f.translations.docs) != 0 {
				t.Error("invalid request should not be stored")
			}
		})
	}
}

func TestAddTranslationDocument_PathConfinedToUploads(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantPath string
		wantErr  bool
	}{
		{"relative path resolves under uploads", "a.pdf", "/uploads/a.pdf", false},
		{"parent escape", "/uploads/../etc/secrets.txt", "", true},
		{"absolute path elsewhere", "/etc/secrets.txt", "", true},
		{"relative escape", "../secrets.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := newDocumentFixture(t)
			doc, err := svc.AddTranslationDocument(context.Background(), &docsysSvc.AddDocumentRequest{
				ActorID: 1, Path: tt.path, Name: "doc",
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				if f.extract.calls != 0 || len(f.translations.docs) != 0 {
					t.Error("a path outside uploads must not be read or stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddTranslationDocument() error = %v", err)
			}
			if doc.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", doc.Path, tt.wantPath)
			}
		})
	}
}

func TestPathsOutsideUploadsRejected(t *testing.T) {
	f, svc := newDocumentFixture(t)
	f.translations.docs[5] = &models.TranslationDocument{
		Document: models.Document{ID: 5, Path: "/uploads/a.pdf", Name: "a.pdf", Active: true},
	}
	ctx := context.Background()

	if _, err := svc.AnalyzeDocument(ctx, "/etc/passwd.txt"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("AnalyzeDocument() error = %v, want ErrValidation", err)
	}

	escape := "/uploads/../etc/secrets.txt"
	if _, err := svc.EditTranslationDocument(ctx, &docsysSvc.EditDocumentRequest{ActorID: 1, ID: 5, Path: &escape}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("EditTranslationDocument() error = %v, want ErrValidation", err)
	}
	if f.translations.docs[5].Path != "/uploads/a.pdf" {
		t.Errorf("path was changed to %q", f.translations.docs[5].Path)
	}
	if f.extract.calls != 0 {
		t.Errorf("extractor called %d times for rejected paths", f.extract.calls)
	}
}

func TestEditTranslationDocument(t *testing.T) {
	f, svc := newDocumentFixture(t)
	f.translations = newFakeTranslationRepo(models.TranslationDocument{
		Document:  models.Document{ID: 5, Path: "/uploads/a.pdf", Name: "a.pdf", Active: true, CreatedBy: 1},
		PageCount: 2, CharCount: 13, CharCountWithSpaces: 15,
	})
	svc = NewDocumentService(f.translations, f.docs, f.parts, f.audits, f.extract, NewContentAnalyzer(),
		NewLocalFileStore("/uploads", testLogger()), testLogger())

	newPath := "/uploads/b.txt"
	inactive := false
	doc, err := svc.EditTranslationDocument(context.Background(), &docsysSvc.EditDocumentRequest{
		ActorID: 9, ID: 5, Path: &newPath, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("EditTranslationDocument() error = %v", err)
	}

	if doc.Path != newPath || doc.Active || doc.Name != "a.pdf" {
		t.Errorf("unexpected document after edit: %+v", doc)
	}
	if doc.PageCount != 1 || doc.CharCount != 4 || doc.CharCountWithSpaces != 5 {
		t.Errorf("counts should be recomputed for the new path, got %d/%d/%d", doc.PageCount, doc.CharCount, doc.CharCountWithSpaces)
	}
	if doc.UpdatedBy == nil || *doc.UpdatedBy != 9 || doc.UpdatedAt == nil {
		t.Errorf("updated_by/updated_at not stamped: %+v", doc)
	}
	if len(f.audits.audits) != 1 || f.audits.audits[0].Status != models.AuditStatusUpdated {
		t.Errorf("audits = %+v", f.audits.audits)
	}
}

func TestEditTranslationDocument_NotFound(t *testing.T) {
	_, svc := newDocumentFixture(t)
	name := "x"
	_, err := svc.EditTranslationDocument(context.Background(), &docsysSvc.EditDocumentRequest{ActorID: 1, ID: 77, Name: &name})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPlainDocuments(t *testing.T) {
	f, svc := newDocumentFixture(t)
	ctx := context.Background()

	doc, err := svc.AddDocument(ctx, models.KindGeneral, &docsysSvc.AddDocumentRequest{ActorID: 3, Path: "/uploads/g.pdf", Name: "glossary"})
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}

	if _, err := svc.GetDocument(ctx, models.KindUser, doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("general document should not be visible as a user document, err = %v", err)
	}

	name := "glossary v2"
	edited, err := svc.EditDocument(ctx, models.KindGeneral, &docsysSvc.EditDocumentRequest{ActorID: 4, ID: doc.ID, Name: &name})
	if err != nil {
		t.Fatalf("EditDocument() error = %v", err)
	}
	if edited.Name != name || *edited.UpdatedBy != 4 {
		t.Errorf("unexpected edit result: %+v", edited)
	}

	list, err := svc.ListDocuments(ctx, models.KindGeneral)
	if err != nil || len(list) != 1 {
		t.Errorf("ListDocuments() = %v, %v", list, err)
	}

	if _, err := svc.AddDocument(ctx, models.KindTranslation, &docsysSvc.AddDocumentRequest{ActorID: 3, Path: "p", Name: "n"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("translation kind through AddDocument error = %v, want ErrValidation", err)
	}
	if len(f.audits.audits) != 0 {
		t.Error("plain documents are not audited")
	}
}

func TestGetDocumentAudits(t *testing.T) {
	f, svc := newDocumentFixture(t)
	f.audits.audits = []models.DocumentAudit{
		{DocumentID: 1, Status: models.AuditStatusAdded},
		{DocumentID: 2, Status: models.AuditStatusAdded},
		{DocumentID: 1, Status: models.AuditStatusPartitioned},
	}

	audits, err := svc.GetDocumentAudits(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDocumentAudits() error = %v", err)
	}
	if len(audits) != 2 {
		t.Errorf("got %d audits, want 2", len(audits))
	}

	if _, err := svc.GetDocumentAudits(context.Background(), 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLocalFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalFileStore(dir, testLogger())

	path, err := store.Save(context.Background(), "Report.PDF", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if filepath.Ext(path) != ".pdf" {
		t.Errorf("saved path %q should keep the lowercased extension", path)
	}
	if strings.Contains(path, "Report") {
		t.Errorf("saved path %q should not reuse the client file name", path)
	}
	content, err := os.ReadFile(path)
	if err != nil || string(content) != "%PDF-1.4" {
		t.Errorf("saved content = %q, %v", content, err)
	}

	other, err := store.Save(context.Background(), "Report.PDF", strings.NewReader("x"))
	if err != nil || other == path {
		t.Errorf("second save should get a distinct name, got %q (%v)", other, err)
	}

	if _, err := store.Save(context.Background(), "README", strings.NewReader("x")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("extensionless upload error = %v, want ErrValidation", err)
	}
}
