package docsystem

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of file formats the extractor understands.
type Format int

const (
	FormatUnsupported Format = iota
	FormatPlainText
	FormatPDF
	FormatWord
)

var formatNames = map[Format]string{
	FormatUnsupported: "unsupported",
	FormatPlainText:   "plaintext",
	FormatPDF:         "pdf",
	FormatWord:        "word",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unsupported"
}

// ParseFormatName maps a format name back to its Format. Unknown names map to
// FormatUnsupported.
func ParseFormatName(name string) Format {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f
		}
	}
	return FormatUnsupported
}

// Extension returns the lowercased extension of path without the leading dot
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ExtractedText is the text content of a file and the number of pages it spans
type ExtractedText struct {
	Text      string
	PageCount int
}
