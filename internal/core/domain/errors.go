package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion errors. Fatal for the single ingestion operation;
	// no partial source is left behind.

	// ErrMissingColumns indicates the file lacks the required columns.
	// The column names are case-sensitive and exact.
	ErrMissingColumns = errors.New("File must contain 'Question' and 'Answer' columns")

	// ErrUnsupportedFormat indicates the file extension is not recognised.
	ErrUnsupportedFormat = errors.New("Unsupported file format")

	// ErrEmptyFile indicates the file has headers but no data rows.
	ErrEmptyFile = errors.New("file contains no question/answer rows")

	// Query-time conditions.

	// ErrQueryInProgress indicates a question is already being processed.
	// Queries are handled one at a time.
	ErrQueryInProgress = errors.New("a question is already being processed")

	// Service availability.

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Sources cannot be built or searched without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
