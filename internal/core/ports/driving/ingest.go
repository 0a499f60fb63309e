package driving

import (
	"context"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// IngestService turns knowledge-base files into searchable sources.
type IngestService interface {
	// IngestFile parses a CSV or XLSX file, builds the source's vector
	// index, and persists everything. Either the source is fully
	// created or nothing is left behind.
	IngestFile(ctx context.Context, path string) (*domain.Source, error)
}
