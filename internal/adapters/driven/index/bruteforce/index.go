// Package bruteforce provides an exact in-memory nearest-neighbour index
// over cosine distance. Knowledge bases are small enough (hundreds to a
// few thousand Q&A pairs per source) that a linear scan beats the
// operational cost of an approximate index.
package bruteforce

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds one source's records and their embeddings.
// Distance is 1 - cosine similarity: non-negative, lower is more
// similar, bounded by the embedding space rather than [0,1].
type Index struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	records  []domain.Record
	vectors  [][]float32
}

// New creates an empty index backed by the given embedder.
// Corpus-fitted embedders (TF-IDF) must not be shared between indexes;
// each source gets its own.
func New(embedder driven.EmbeddingService) *Index {
	return &Index{embedder: embedder}
}

// Build embeds each record's normalized text and replaces the index
// contents. Embedding failure is fatal for the build; the previous
// contents are kept untouched in that case.
func (idx *Index) Build(ctx context.Context, records []domain.Record) error {
	if idx.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	corpus := make([]string, len(records))
	for i := range records {
		corpus[i] = records[i].Normalized
	}

	if err := idx.embedder.Fit(corpus); err != nil {
		return fmt.Errorf("fit embedder: %w", err)
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, corpus)
	if err != nil {
		return fmt.Errorf("embed records: %w", err)
	}
	for i := range vectors {
		normalize(vectors[i])
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.records = append([]domain.Record(nil), records...)
	idx.vectors = vectors
	return nil
}

// Search returns up to k nearest neighbours to the query text, ascending
// by distance. An empty index yields an empty slice, never an error.
func (idx *Index) Search(ctx context.Context, queryText string, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.records) == 0 {
		return []driven.VectorHit{}, nil
	}
	if idx.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		k = domain.SearchK
	}

	query, err := idx.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	normalize(query)

	hits := make([]driven.VectorHit, len(idx.records))
	for i := range idx.records {
		hits[i] = driven.VectorHit{
			Record:   idx.records[i],
			Distance: cosineDistance(idx.vectors[i], query),
		}
	}

	// Stable keeps file order for equal distances.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}

// cosineDistance computes 1 - cosine similarity for unit vectors,
// clamped at zero against float rounding.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	d := 1.0 - dot
	if d < 0 {
		return 0
	}
	return d
}

// normalize scales a vector to unit length in place. Zero vectors are
// left untouched; they end up at distance 1 from everything.
func normalize(v []float32) {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
