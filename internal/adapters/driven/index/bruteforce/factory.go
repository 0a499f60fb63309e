package bruteforce

import "github.com/custodia-labs/quanda-cli/internal/core/ports/driven"

// Ensure Factory implements the interface.
var _ driven.VectorIndexFactory = (*Factory)(nil)

// Factory creates empty brute-force indexes, each with its own embedder
// instance so corpus-fitted embedders never leak state across sources.
type Factory struct {
	newEmbedder func() driven.EmbeddingService
}

// NewFactory creates a factory. newEmbedder is called once per index.
func NewFactory(newEmbedder func() driven.EmbeddingService) *Factory {
	return &Factory{newEmbedder: newEmbedder}
}

// New returns an empty index backed by a fresh embedder.
func (f *Factory) New() driven.VectorIndex {
	return New(f.newEmbedder())
}
