package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dms/internal/domain/models/docsystem"
	"dms/internal/domain/repositories"
)

// RepositoryConfig holds what every postgres repository needs
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds the environment-prefixed table names
type TableNames struct {
	TranslationDocuments     string
	GeneralDocuments         string
	UserDocuments            string
	TranslationDocumentParts string
}

// NewTableNames creates table names with the given prefix ("dev_", "test_", "prod_", or "" via TABLE_PREFIX=-)
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		TranslationDocuments:     prefix + "translation_documents",
		GeneralDocuments:         prefix + "general_documents",
		UserDocuments:            prefix + "user_documents",
		TranslationDocumentParts: prefix + "translation_document_parts",
	}
}

// ForKind returns the table backing a document kind
func (t *TableNames) ForKind(kind docsystem.DocumentKind) (string, error) {
	switch kind {
	case docsystem.KindTranslation:
		return t.TranslationDocuments, nil
	case docsystem.KindGeneral:
		return t.GeneralDocuments, nil
	case docsystem.KindUser:
		return t.UserDocuments, nil
	default:
		return "", fmt.Errorf("unknown document kind %q", kind)
	}
}

// All returns every table, children before parents, in drop order
func (t *TableNames) All() []string {
	return []string{
		t.TranslationDocumentParts,
		t.TranslationDocuments,
		t.GeneralDocuments,
		t.UserDocuments,
	}
}

// CreateConnectionPool opens and pings a pgx pool.
//
// Behind PgBouncer in transaction mode (port 6543) prepared statements are not
// available, so the pool switches to QueryExecModeCacheDescribe unless the
// connection string already sets default_query_exec_mode.
func CreateConnectionPool(ctx context.Context, databaseURL string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		logger.Debug("auto-configured cache_describe mode for pgbouncer", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction carried by ctx, or the pool when there is none
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}
