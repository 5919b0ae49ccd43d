package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysRepo "dms/internal/domain/repositories/docsystem"
	"dms/internal/repository/postgres"
)

const translationDocumentColumns = `id, path, name, page_count, char_count, char_count_with_spaces,
	active, created_at, created_by, updated_at, updated_by`

// PostgresTranslationDocumentRepository implements TranslationDocumentRepository
type PostgresTranslationDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewTranslationDocumentRepository creates a new translation document repository
func NewTranslationDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.TranslationDocumentRepository {
	return &PostgresTranslationDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a translation document and fills in its ID
func (r *PostgresTranslationDocumentRepository) Create(ctx context.Context, doc *models.TranslationDocument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (path, name, page_count, char_count, char_count_with_spaces, active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.tables.TranslationDocuments)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Path,
		doc.Name,
		doc.PageCount,
		doc.CharCount,
		doc.CharCountWithSpaces,
		doc.Active,
		doc.CreatedAt,
		doc.CreatedBy,
	).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("create translation document: %w", err)
	}

	return nil
}

// GetByID retrieves a translation document by ID
func (r *PostgresTranslationDocumentRepository) GetByID(ctx context.Context, id int) (*models.TranslationDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, translationDocumentColumns, r.tables.TranslationDocuments)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanTranslationDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Resource: "translation document", ID: id}
		}
		return nil, fmt.Errorf("get translation document: %w", err)
	}

	return doc, nil
}

// Update rewrites the mutable columns of a translation document
func (r *PostgresTranslationDocumentRepository) Update(ctx context.Context, doc *models.TranslationDocument) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $1, name = $2, page_count = $3, char_count = $4, char_count_with_spaces = $5,
			active = $6, updated_at = $7, updated_by = $8
		WHERE id = $9
	`, r.tables.TranslationDocuments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Path,
		doc.Name,
		doc.PageCount,
		doc.CharCount,
		doc.CharCountWithSpaces,
		doc.Active,
		doc.UpdatedAt,
		doc.UpdatedBy,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update translation document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "translation document", ID: doc.ID}
	}

	return nil
}

// List returns every translation document, newest first
func (r *PostgresTranslationDocumentRepository) List(ctx context.Context) ([]models.TranslationDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC`, translationDocumentColumns, r.tables.TranslationDocuments)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list translation documents: %w", err)
	}
	defer rows.Close()

	documents := []models.TranslationDocument{}
	for rows.Next() {
		doc, err := scanTranslationDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation documents: %w", err)
	}

	return documents, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranslationDocument(row rowScanner) (*models.TranslationDocument, error) {
	var doc models.TranslationDocument
	err := row.Scan(
		&doc.ID,
		&doc.Path,
		&doc.Name,
		&doc.PageCount,
		&doc.CharCount,
		&doc.CharCountWithSpaces,
		&doc.Active,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&doc.UpdatedAt,
		&doc.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
