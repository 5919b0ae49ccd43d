package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysRepo "dms/internal/domain/repositories/docsystem"
	"dms/internal/repository/postgres"
)

var partColumns = []string{
	"id", "translation_document_id", "batch_id", "path", "content",
	"char_count", "char_count_with_spaces", "active", "created_at", "created_by",
}

// PostgresDocumentPartRepository implements DocumentPartRepository
type PostgresDocumentPartRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
	sq     sq.StatementBuilderType
}

// NewDocumentPartRepository creates a new document part repository
func NewDocumentPartRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentPartRepository {
	return &PostgresDocumentPartRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateBatch inserts every part with a single multi-row INSERT
func (r *PostgresDocumentPartRepository) CreateBatch(ctx context.Context, parts []models.DocumentPart) (int64, error) {
	if len(parts) == 0 {
		return 0, nil
	}

	sqlStr, args, err := buildPartInsert(r.sq, r.tables.TranslationDocumentParts, parts)
	if err != nil {
		return 0, fmt.Errorf("build part insert: %w", err)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, sqlStr, args...)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return 0, &domain.NotFoundError{Resource: "translation document", ID: parts[0].TranslationDocumentID}
		}
		return 0, fmt.Errorf("insert document parts: %w", err)
	}

	r.logger.Debug("inserted document parts",
		"document_id", parts[0].TranslationDocumentID,
		"batch_id", parts[0].BatchID,
		"rows", result.RowsAffected(),
	)

	return result.RowsAffected(), nil
}

// ListByBatch returns the parts of one partitioning run ordered by ID
func (r *PostgresDocumentPartRepository) ListByBatch(ctx context.Context, documentID int, batchID uuid.UUID) ([]models.DocumentPart, error) {
	sqlStr, args, err := r.sq.Select(partColumns...).
		From(r.tables.TranslationDocumentParts).
		Where(sq.Eq{"translation_document_id": documentID, "batch_id": batchID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build part select: %w", err)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list document parts: %w", err)
	}
	defer rows.Close()

	parts := []models.DocumentPart{}
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document part: %w", err)
		}
		parts = append(parts, *part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document parts: %w", err)
	}

	return parts, nil
}

// GetByID retrieves a single part
func (r *PostgresDocumentPartRepository) GetByID(ctx context.Context, id int) (*models.DocumentPart, error) {
	sqlStr, args, err := r.sq.Select(partColumns...).
		From(r.tables.TranslationDocumentParts).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build part select: %w", err)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	part, err := scanPart(executor.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Resource: "translation document part", ID: id}
		}
		return nil, fmt.Errorf("get document part: %w", err)
	}

	return part, nil
}

func buildPartInsert(b sq.StatementBuilderType, table string, parts []models.DocumentPart) (string, []any, error) {
	ib := b.Insert(table).Columns(
		"translation_document_id", "batch_id", "path", "content",
		"char_count", "char_count_with_spaces", "active", "created_at", "created_by",
	)
	for _, p := range parts {
		ib = ib.Values(
			p.TranslationDocumentID, p.BatchID, p.Path, p.Content,
			p.CharCount, p.CharCountWithSpaces, p.Active, p.CreatedAt, p.CreatedBy,
		)
	}
	return ib.ToSql()
}

func scanPart(row rowScanner) (*models.DocumentPart, error) {
	var part models.DocumentPart
	err := row.Scan(
		&part.ID,
		&part.TranslationDocumentID,
		&part.BatchID,
		&part.Path,
		&part.Content,
		&part.CharCount,
		&part.CharCountWithSpaces,
		&part.Active,
		&part.CreatedAt,
		&part.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &part, nil
}
