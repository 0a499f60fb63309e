package driven

import (
	"context"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// SourceStore persists source metadata.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// Delete removes a source.
	Delete(ctx context.Context, id string) error

	// List returns all sources.
	List(ctx context.Context) ([]domain.Source, error)
}

// RecordStore persists the question/answer records belonging to sources.
type RecordStore interface {
	// SaveRecords stores records for a source.
	SaveRecords(ctx context.Context, records []domain.Record) error

	// ListRecords returns all records for a source, ordered by position.
	ListRecords(ctx context.Context, sourceID string) ([]domain.Record, error)

	// DeleteRecords removes all records for a source.
	DeleteRecords(ctx context.Context, sourceID string) error
}

// IndexStore persists serialized vector indexes, one blob per source.
type IndexStore interface {
	// PutIndex stores or replaces the index blob for a source.
	PutIndex(ctx context.Context, sourceID string, blob []byte) error

	// GetIndex retrieves the index blob for a source.
	GetIndex(ctx context.Context, sourceID string) ([]byte, error)

	// DeleteIndex removes the index blob for a source.
	DeleteIndex(ctx context.Context, sourceID string) error
}
