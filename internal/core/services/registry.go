package services

import (
	"sync"

	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
)

// IndexRegistry holds the live vector index for each ready source.
// Ingestion registers indexes as sources are built; retrieval looks them
// up per query. Indexes for removed sources are unregistered.
type IndexRegistry struct {
	mu      sync.RWMutex
	indexes map[string]driven.VectorIndex
}

// NewIndexRegistry creates an empty registry.
func NewIndexRegistry() *IndexRegistry {
	return &IndexRegistry{
		indexes: make(map[string]driven.VectorIndex),
	}
}

// Register associates an index with a source, replacing any previous one.
func (r *IndexRegistry) Register(sourceID string, index driven.VectorIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexes[sourceID] = index
}

// Get returns the index for a source, or nil if none is registered.
func (r *IndexRegistry) Get(sourceID string) driven.VectorIndex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexes[sourceID]
}

// Unregister removes the index for a source.
func (r *IndexRegistry) Unregister(sourceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.indexes, sourceID)
}

// Len returns the number of registered indexes.
func (r *IndexRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.indexes)
}
