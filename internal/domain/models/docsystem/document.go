package docsystem

import (
	"time"
)

// DocumentKind identifies which document table a record lives in
type DocumentKind string

const (
	KindTranslation DocumentKind = "translation"
	KindGeneral     DocumentKind = "general" // glossaries, style guides
	KindUser        DocumentKind = "user"    // CVs, certificates attached to a profile
)

// Document holds the columns shared by every document variant.
// Documents are never physically deleted; Active is the soft-delete flag.
type Document struct {
	ID        int        `json:"id" db:"id"`
	Path      string     `json:"path" db:"path"`
	Name      string     `json:"name" db:"name"`
	Active    bool       `json:"active" db:"active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	CreatedBy int        `json:"created_by" db:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	UpdatedBy *int       `json:"updated_by,omitempty" db:"updated_by"`
}

// TranslationDocument is a document submitted for translation. It carries the
// workload figures computed at upload time.
type TranslationDocument struct {
	Document
	PageCount           int `json:"page_count" db:"page_count"`
	CharCount           int `json:"char_count" db:"char_count"`
	CharCountWithSpaces int `json:"char_count_with_spaces" db:"char_count_with_spaces"`
}

// DocumentAnalysis is the result of analyzing an uploaded file
type DocumentAnalysis struct {
	FilePath            string `json:"file_path"`
	PageCount           int    `json:"page_count"`
	CharCount           int    `json:"char_count"`
	CharCountWithSpaces int    `json:"char_count_with_spaces"`
}
