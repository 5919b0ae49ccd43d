package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"dms/internal/domain"
	models "dms/internal/domain/models/docsystem"
)

// PlainTextParser reads a whole file as a single page of text. Files that are
// not UTF-8 are decoded from UTF-16 when they carry a byte order mark and from
// the legacy code page otherwise.
type PlainTextParser struct {
	legacy encoding.Encoding
}

// NewPlainTextParser creates a plain text parser with Windows-1254 (Turkish)
// as the legacy code page
func NewPlainTextParser() *PlainTextParser {
	return NewPlainTextParserWithEncoding(charmap.Windows1254)
}

// NewPlainTextParserWithEncoding creates a plain text parser that decodes
// non-UTF-8 files with legacy
func NewPlainTextParserWithEncoding(legacy encoding.Encoding) *PlainTextParser {
	return &PlainTextParser{legacy: legacy}
}

// Parse reads the file at path
func (p *PlainTextParser) Parse(ctx context.Context, path string) (*models.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Resource: "file", ID: path}
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	text, err := p.decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &models.ExtractedText{Text: text, PageCount: 1}, nil
}

// decode returns content as valid UTF-8 without a byte order mark
func (p *PlainTextParser) decode(content []byte) (string, error) {
	if utf8.Valid(content) {
		return strings.TrimPrefix(string(content), "\uFEFF"), nil
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(p.legacy.NewDecoder()), content)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD"), nil
}

// Name returns the parser name
func (p *PlainTextParser) Name() string { return "plaintext" }
