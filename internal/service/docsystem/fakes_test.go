package docsystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	"dms/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTranslationRepo struct {
	docs   map[int]*models.TranslationDocument
	nextID int
}

func newFakeTranslationRepo(docs ...models.TranslationDocument) *fakeTranslationRepo {
	r := &fakeTranslationRepo{docs: map[int]*models.TranslationDocument{}, nextID: 1}
	for i := range docs {
		d := docs[i]
		r.docs[d.ID] = &d
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r
}

func (r *fakeTranslationRepo) Create(_ context.Context, doc *models.TranslationDocument) error {
	doc.ID = r.nextID
	r.nextID++
	d := *doc
	r.docs[d.ID] = &d
	return nil
}

func (r *fakeTranslationRepo) GetByID(_ context.Context, id int) (*models.TranslationDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation document", ID: id}
	}
	c := *d
	return &c, nil
}

func (r *fakeTranslationRepo) Update(_ context.Context, doc *models.TranslationDocument) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return &domain.NotFoundError{Resource: "translation document", ID: doc.ID}
	}
	d := *doc
	r.docs[d.ID] = &d
	return nil
}

func (r *fakeTranslationRepo) List(_ context.Context) ([]models.TranslationDocument, error) {
	out := []models.TranslationDocument{}
	for _, d := range r.docs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeDocRepo struct {
	docs   map[models.DocumentKind]map[int]*models.Document
	nextID int
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: map[models.DocumentKind]map[int]*models.Document{}, nextID: 1}
}

func (r *fakeDocRepo) Create(_ context.Context, kind models.DocumentKind, doc *models.Document) error {
	if r.docs[kind] == nil {
		r.docs[kind] = map[int]*models.Document{}
	}
	doc.ID = r.nextID
	r.nextID++
	d := *doc
	r.docs[kind][d.ID] = &d
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, kind models.DocumentKind, id int) (*models.Document, error) {
	d, ok := r.docs[kind][id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: string(kind) + " document", ID: id}
	}
	c := *d
	return &c, nil
}

func (r *fakeDocRepo) Update(_ context.Context, kind models.DocumentKind, doc *models.Document) error {
	if _, ok := r.docs[kind][doc.ID]; !ok {
		return &domain.NotFoundError{Resource: string(kind) + " document", ID: doc.ID}
	}
	d := *doc
	r.docs[kind][d.ID] = &d
	return nil
}

func (r *fakeDocRepo) List(_ context.Context, kind models.DocumentKind) ([]models.Document, error) {
	out := []models.Document{}
	for _, d := range r.docs[kind] {
		out = append(out, *d)
	}
	return out, nil
}

// fakePartRepo assigns sequential IDs like a SERIAL column
type fakePartRepo struct {
	parts      []models.DocumentPart
	nextID     int
	zeroRows   bool
	insertErr  error
	listErr    error
	insertCall int
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{nextID: 1}
}

func (r *fakePartRepo) CreateBatch(_ context.Context, parts []models.DocumentPart) (int64, error) {
	r.insertCall++
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	if r.zeroRows {
		return 0, nil
	}
	for _, p := range parts {
		p.ID = r.nextID
		r.nextID++
		r.parts = append(r.parts, p)
	}
	return int64(len(parts)), nil
}

func (r *fakePartRepo) ListByBatch(_ context.Context, documentID int, batchID uuid.UUID) ([]models.DocumentPart, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.DocumentPart{}
	for _, p := range r.parts {
		if p.TranslationDocumentID == documentID && p.BatchID == batchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePartRepo) GetByID(_ context.Context, id int) (*models.DocumentPart, error) {
	for _, p := range r.parts {
		if p.ID == id {
			c := p
			return &c, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "translation document part", ID: id}
}

// fakeTxManager discards part rows written by a failed unit of work
type fakeTxManager struct {
	parts     *fakePartRepo
	rollbacks int
	commits   int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	before := len(m.parts.parts)
	if err := fn(ctx); err != nil {
		m.parts.parts = m.parts.parts[:before]
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

type fakeAuditRepo struct {
	mu     sync.Mutex
	audits []models.DocumentAudit
	err    error
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *models.DocumentAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *fakeAuditRepo) ListByDocument(_ context.Context, documentID int) ([]models.DocumentAudit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.DocumentAudit{}
	for _, a := range r.audits {
		if a.DocumentID == documentID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeExtractor serves fixed text per path and rejects anything else as unsupported
type fakeExtractor struct {
	texts map[string]*models.ExtractedText
	calls int
}

func (e *fakeExtractor) Extract(_ context.Context, path string) (*models.ExtractedText, error) {
	e.calls++
	if t, ok := e.texts[path]; ok {
		return t, nil
	}
	return nil, &domain.UnsupportedFormatError{Extension: models.Extension(path)}
}

var errBoom = errors.New("boom")
