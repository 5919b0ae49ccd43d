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

const documentColumns = `id, path, name, active, created_at, created_by, updated_at, updated_by`

// PostgresDocumentRepository stores general and user documents. Both kinds share
// a column layout and differ only by table.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresDocumentRepository) table(kind models.DocumentKind) (string, error) {
	if kind == models.KindTranslation {
		return "", &domain.ValidationError{Message: "translation documents have their own repository"}
	}
	return r.tables.ForKind(kind)
}

// Create inserts a document and fills in its ID
func (r *PostgresDocumentRepository) Create(ctx context.Context, kind models.DocumentKind, doc *models.Document) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (path, name, active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, doc.Path, doc.Name, doc.Active, doc.CreatedAt, doc.CreatedBy).Scan(&doc.ID); err != nil {
		return fmt.Errorf("create %s document: %w", kind, err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, kind models.DocumentKind, id int) (*models.Document, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Resource: string(kind) + " document", ID: id}
		}
		return nil, fmt.Errorf("get %s document: %w", kind, err)
	}

	return doc, nil
}

// Update rewrites the mutable columns of a document
func (r *PostgresDocumentRepository) Update(ctx context.Context, kind models.DocumentKind, doc *models.Document) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $1, name = $2, active = $3, updated_at = $4, updated_by = $5
		WHERE id = $6
	`, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, doc.Path, doc.Name, doc.Active, doc.UpdatedAt, doc.UpdatedBy, doc.ID)
	if err != nil {
		return fmt.Errorf("update %s document: %w", kind, err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: string(kind) + " document", ID: doc.ID}
	}

	return nil
}

// List returns every document of a kind, newest first
func (r *PostgresDocumentRepository) List(ctx context.Context, kind models.DocumentKind) ([]models.Document, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC`, documentColumns, table)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", kind, err)
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s document: %w", kind, err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s documents: %w", kind, err)
	}

	return documents, nil
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.Path,
		&doc.Name,
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
