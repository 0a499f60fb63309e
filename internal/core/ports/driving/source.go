package driving

import (
	"context"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// SourceService manages ingested sources.
type SourceService interface {
	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Remove deletes a source, its records, and its index.
	Remove(ctx context.Context, id string) error
}
