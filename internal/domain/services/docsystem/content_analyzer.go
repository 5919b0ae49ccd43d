package docsystem

// ContentAnalyzer counts and splits extracted document text
type ContentAnalyzer interface {
	// CountCharacters counts letters and digits, plus space separators
	// unless excludeWhitespace is set. Punctuation and control characters
	// never count.
	CountCharacters(text string, excludeWhitespace bool) int

	// Split cuts text into exactly partCount contiguous spans of equal rune
	// length; the last span absorbs the remainder. Returns
	// domain.ErrInvalidArgument when partCount <= 0.
	Split(text string, partCount int) ([]string, error)
}
