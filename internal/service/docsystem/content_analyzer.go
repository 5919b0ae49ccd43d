package docsystem

import (
	"fmt"
	"unicode"

	"dms/internal/domain"
	docsysSvc "dms/internal/domain/services/docsystem"
)

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() docsysSvc.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountCharacters counts the billable characters of text
func (s *contentAnalyzerService) CountCharacters(text string, excludeWhitespace bool) int {
	count := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			count++
		case !excludeWhitespace && unicode.Is(unicode.Zs, r):
			count++
		}
	}
	return count
}

// Split cuts text into partCount spans of equal rune count, the last span
// taking the remainder. Extracted text is valid UTF-8; should an invalid byte
// slip through it counts as one rune and is kept as is, so the parts always
// concatenate back to text byte for byte.
func (s *contentAnalyzerService) Split(text string, partCount int) ([]string, error) {
	if partCount <= 0 {
		return nil, fmt.Errorf("%w: part count must be positive, got %d", domain.ErrInvalidArgument, partCount)
	}

	// offsets[i] is the byte offset of rune i; the final entry is len(text)
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	runeCount := len(offsets)
	offsets = append(offsets, len(text))

	size := runeCount / partCount

	parts := make([]string, partCount)
	for i := 0; i < partCount-1; i++ {
		parts[i] = text[offsets[i*size]:offsets[(i+1)*size]]
	}
	parts[partCount-1] = text[offsets[(partCount-1)*size]:]

	return parts, nil
}
