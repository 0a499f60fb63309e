package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]domain.Record // keyed by source ID
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string][]domain.Record),
	}
}

// SaveRecords stores records for their sources.
func (s *RecordStore) SaveRecords(_ context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.SourceID] = append(s.records[r.SourceID], r)
	}
	return nil
}

// ListRecords returns all records for a source, ordered by position.
func (s *RecordStore) ListRecords(_ context.Context, sourceID string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := append([]domain.Record(nil), s.records[sourceID]...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	return records, nil
}

// DeleteRecords removes all records for a source.
func (s *RecordStore) DeleteRecords(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sourceID)
	return nil
}
