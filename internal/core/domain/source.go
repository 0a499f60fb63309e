package domain

import "time"

// Source status values.
const (
	// SourceStatusProcessing means ingestion is in progress.
	SourceStatusProcessing = "processing"

	// SourceStatusReady means the source is indexed and searchable.
	SourceStatusReady = "ready"

	// SourceStatusError means ingestion failed.
	SourceStatusError = "error"
)

// Source is one ingested knowledge-base file: its records plus the
// vector index built over them. A source exclusively owns both; deleting
// a source deletes its records and its index.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Name is the human-readable name, usually derived from the filename.
	Name string

	// Filename is the original name of the uploaded file.
	Filename string

	// FileType is the file extension ("csv", "xlsx", "xls").
	FileType string

	// RecordCount is the number of Q&A records in this source.
	RecordCount int

	// Status is one of the SourceStatus values.
	Status string

	// CreatedAt is when the source was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the name used to label answers in multi-source
// results. Falls back to the filename, then the ID.
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Filename != "" {
		return s.Filename
	}
	return s.ID
}
