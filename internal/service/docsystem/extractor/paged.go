package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
	docsysSvc "dms/internal/domain/services/docsystem"
)

// PagedParser extracts text page by page through MuPDF. It handles PDF and
// the office formats MuPDF can open.
type PagedParser struct {
	logger *slog.Logger
}

// NewPagedParser creates a MuPDF backed parser
func NewPagedParser(logger *slog.Logger) *PagedParser {
	return &PagedParser{logger: logger}
}

// Parse opens path and joins the text of every page with a newline
func (p *PagedParser) Parse(ctx context.Context, path string) (*models.ExtractedText, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Resource: "file", ID: path}
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	p.logger.Debug("document parsed", "path", path, "pages", numPages)

	return &models.ExtractedText{Text: strings.Join(pages, "\n"), PageCount: numPages}, nil
}

// Name returns the parser name
func (p *PagedParser) Name() string { return "mupdf" }

// ValidatingPDFParser rejects structurally broken PDFs before handing them to
// the wrapped parser
type ValidatingPDFParser struct {
	next docsysSvc.DocumentParser
	conf *model.Configuration
}

// NewValidatingPDFParser wraps next with a relaxed pdfcpu validation pass
func NewValidatingPDFParser(next docsysSvc.DocumentParser) *ValidatingPDFParser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &ValidatingPDFParser{next: next, conf: conf}
}

// Parse validates then delegates
func (p *ValidatingPDFParser) Parse(ctx context.Context, path string) (*models.ExtractedText, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Resource: "file", ID: path}
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if err := api.ValidateFile(path, p.conf); err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid pdf: %v", err)}
	}
	return p.next.Parse(ctx, path)
}

// Name returns the parser name
func (p *ValidatingPDFParser) Name() string { return "pdfcpu+" + p.next.Name() }
