package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quanda-cli/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages ingested sources.
type SourceService struct {
	sourceStore driven.SourceStore
	recordStore driven.RecordStore
	indexStore  driven.IndexStore
	registry    *IndexRegistry
}

// NewSourceService creates a new source service.
func NewSourceService(
	sourceStore driven.SourceStore,
	recordStore driven.RecordStore,
	indexStore driven.IndexStore,
	registry *IndexRegistry,
) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		recordStore: recordStore,
		indexStore:  indexStore,
		registry:    registry,
	}
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.sourceStore.Get(ctx, id)
}

// List returns all sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Remove deletes a source together with its records and index.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	// Verify the source exists before deleting anything.
	if _, err := s.sourceStore.Get(ctx, id); err != nil {
		return err
	}

	logger.Info("Removing source %s", id)

	if err := s.recordStore.DeleteRecords(ctx, id); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if err := s.indexStore.DeleteIndex(ctx, id); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if err := s.sourceStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}

	s.registry.Unregister(id)
	return nil
}
