package config

const (
	// MaxDocumentNameLength fits the name column and keeps listings readable
	MaxDocumentNameLength = 255

	// MaxDocumentPathLength bounds stored file paths
	MaxDocumentPathLength = 1024

	// MaxPartCount is the largest split a single request may ask for. Parts
	// are stored with one multi-row INSERT binding 9 parameters per row, and
	// Postgres caps a statement at 65535 bind parameters (7281 rows).
	MaxPartCount = 1000

	// DefaultMaxUploadSize applies when MAX_UPLOAD_SIZE is unset (50 MiB)
	DefaultMaxUploadSize int64 = 50 << 20
)
