package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte // keyed by source ID
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		blobs: make(map[string][]byte),
	}
}

// PutIndex stores or replaces the index blob for a source.
func (s *IndexStore) PutIndex(_ context.Context, sourceID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[sourceID] = append([]byte(nil), blob...)
	return nil
}

// GetIndex retrieves the index blob for a source.
func (s *IndexStore) GetIndex(_ context.Context, sourceID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[sourceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

// DeleteIndex removes the index blob for a source.
func (s *IndexStore) DeleteIndex(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, sourceID)
	return nil
}
