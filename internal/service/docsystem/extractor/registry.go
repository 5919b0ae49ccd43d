package extractor

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

//go:embed formats.yaml
var formatsFile []byte

type formatTable struct {
	Formats []struct {
		Name       string   `yaml:"name"`
		Extensions []string `yaml:"extensions"`
	} `yaml:"formats"`
}

// Registry maps file extensions to formats and formats to parsers.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]models.Format // key: extension without dot
	parsers map[models.Format]docsysSvc.DocumentParser
	root    string // when set, only paths inside root are read
	logger  *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithRoot confines extraction to files under dir
func WithRoot(dir string) Option {
	return func(r *Registry) { r.root = dir }
}

// NewRegistry loads the embedded extension table. No parsers are registered.
func NewRegistry(logger *slog.Logger, opts ...Option) (*Registry, error) {
	var table formatTable
	if err := yaml.Unmarshal(formatsFile, &table); err != nil {
		return nil, fmt.Errorf("unmarshal formats.yaml: %w", err)
	}

	r := &Registry{
		formats: make(map[string]models.Format),
		parsers: make(map[models.Format]docsysSvc.DocumentParser),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, f := range table.Formats {
		format := models.ParseFormatName(f.Name)
		if format == models.FormatUnsupported {
			return nil, fmt.Errorf("formats.yaml: unknown format %q", f.Name)
		}
		for _, ext := range f.Extensions {
			r.formats[strings.ToLower(strings.TrimPrefix(ext, "."))] = format
		}
	}

	return r, nil
}

// NewDefaultRegistry returns a registry with the plain text and paged document
// parsers registered for every known format
func NewDefaultRegistry(logger *slog.Logger, opts ...Option) (*Registry, error) {
	r, err := NewRegistry(logger, opts...)
	if err != nil {
		return nil, err
	}

	paged := NewPagedParser(logger)
	r.Register(models.FormatPlainText, NewPlainTextParser())
	r.Register(models.FormatPDF, NewValidatingPDFParser(paged))
	r.Register(models.FormatWord, paged)

	return r, nil
}

// Register sets the parser used for format, replacing any previous one
func (r *Registry) Register(format models.Format, parser docsysSvc.DocumentParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[format] = parser
}

// FormatOf classifies path by its extension
func (r *Registry) FormatOf(path string) models.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.formats[models.Extension(path)]; ok {
		return f
	}
	return models.FormatUnsupported
}

// Extract dispatches path to the parser registered for its format
func (r *Registry) Extract(ctx context.Context, path string) (*models.ExtractedText, error) {
	if r.root != "" {
		resolved, err := ResolvePath(r.root, path)
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	format := r.FormatOf(path)
	if format == models.FormatUnsupported {
		return nil, &domain.UnsupportedFormatError{Extension: models.Extension(path)}
	}

	r.mu.RLock()
	parser, ok := r.parsers[format]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.UnsupportedFormatError{Extension: models.Extension(path)}
	}

	extracted, err := parser.Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s with %s parser: %w", path, parser.Name(), err)
	}

	// Downstream counting and splitting work on runes
	if !utf8.ValidString(extracted.Text) {
		r.logger.Warn("extracted text is not valid UTF-8, replacing invalid bytes",
			"path", path,
			"parser", parser.Name(),
		)
		extracted.Text = strings.ToValidUTF8(extracted.Text, "\uFFFD")
	}

	r.logger.Debug("text extracted",
		"path", path,
		"format", format.String(),
		"parser", parser.Name(),
		"pages", extracted.PageCount,
	)

	return extracted, nil
}

var _ docsysSvc.TextExtractor = (*Registry)(nil)
