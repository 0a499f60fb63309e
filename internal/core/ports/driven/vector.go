package driven

import (
	"context"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// VectorIndex provides nearest-neighbour search over one source's
// records. Each source owns exactly one index.
//
// Build failures are fatal for the source; search failures must be
// recovered by the caller so one corrupted source never aborts a
// multi-source query.
type VectorIndex interface {
	// Build embeds each record's normalized text and constructs the
	// index. Replaces any previous contents.
	Build(ctx context.Context, records []domain.Record) error

	// Search returns up to k nearest neighbours to the query text,
	// ascending by distance (best first). An empty index returns an
	// empty slice, not an error.
	Search(ctx context.Context, queryText string, k int) ([]VectorHit, error)

	// Len returns the number of indexed records.
	Len() int

	// Snapshot serializes the index for persistence.
	Snapshot() ([]byte, error)

	// Restore loads a previously serialized index.
	Restore(data []byte) error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Record is the matched record.
	Record domain.Record

	// Distance is the embedding distance. Non-negative, lower is
	// more similar; the upper bound depends on the embedding space.
	Distance float64
}

// VectorIndexFactory creates empty vector indexes. The ingest service
// uses it to build one index per source.
type VectorIndexFactory interface {
	// New returns an empty index backed by the configured embedder.
	New() VectorIndex
}
