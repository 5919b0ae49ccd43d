package docsystem

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"dms/internal/config"
	models "dms/internal/domain/models/docsystem"
)

func TestBuildPartInsert(t *testing.T) {
	batch := uuid.New()
	now := time.Now()
	parts := []models.DocumentPart{
		{TranslationDocumentID: 42, BatchID: batch, Path: "/u/a.txt", Content: "ABC", CharCount: 3, CharCountWithSpaces: 3, Active: true, CreatedAt: now, CreatedBy: 7},
		{TranslationDocumentID: 42, BatchID: batch, Path: "/u/a.txt", Content: "DEF", CharCount: 3, CharCountWithSpaces: 3, Active: true, CreatedAt: now, CreatedBy: 7},
	}

	sqlStr, args, err := buildPartInsert(sq.StatementBuilder.PlaceholderFormat(sq.Dollar), "test_translation_document_parts", parts)
	if err != nil {
		t.Fatalf("buildPartInsert() error = %v", err)
	}

	if !strings.HasPrefix(sqlStr, "INSERT INTO test_translation_document_parts") {
		t.Errorf("unexpected statement: %s", sqlStr)
	}
	if !strings.Contains(sqlStr, "$18") || strings.Contains(sqlStr, "$19") {
		t.Errorf("expected 18 dollar placeholders, got: %s", sqlStr)
	}
	if len(args) != 18 {
		t.Fatalf("len(args) = %d, want 18", len(args))
	}
	if args[3] != "ABC" || args[12] != "DEF" {
		t.Errorf("contents not in insertion order: %v, %v", args[3], args[12])
	}
}

func TestBuildPartInsert_MaxPartCountFitsBindLimit(t *testing.T) {
	const postgresMaxBindParams = 65535

	parts := make([]models.DocumentPart, config.MaxPartCount)
	_, args, err := buildPartInsert(sq.StatementBuilder.PlaceholderFormat(sq.Dollar), "test_translation_document_parts", parts)
	if err != nil {
		t.Fatalf("buildPartInsert() error = %v", err)
	}
	if len(args) > postgresMaxBindParams {
		t.Errorf("%d parts bind %d parameters, over the limit of %d", config.MaxPartCount, len(args), postgresMaxBindParams)
	}
}
