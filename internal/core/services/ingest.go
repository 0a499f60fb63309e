package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quanda-cli/internal/logger"
	"github.com/custodia-labs/quanda-cli/internal/tabular"
	"github.com/custodia-labs/quanda-cli/internal/textnorm"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns spreadsheet files into searchable sources: it
// parses the file, normalizes and classifies every question, builds the
// source's vector index, and persists the lot. Either the whole source
// lands or nothing does.
type IngestService struct {
	normalizer   *textnorm.Normalizer
	indexFactory driven.VectorIndexFactory
	registry     *IndexRegistry
	sourceStore  driven.SourceStore
	recordStore  driven.RecordStore
	indexStore   driven.IndexStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	normalizer *textnorm.Normalizer,
	indexFactory driven.VectorIndexFactory,
	registry *IndexRegistry,
	sourceStore driven.SourceStore,
	recordStore driven.RecordStore,
	indexStore driven.IndexStore,
) *IngestService {
	return &IngestService{
		normalizer:   normalizer,
		indexFactory: indexFactory,
		registry:     registry,
		sourceStore:  sourceStore,
		recordStore:  recordStore,
		indexStore:   indexStore,
	}
}

// IngestFile parses a CSV or XLSX file, builds the source's vector
// index, and persists everything.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.Source, error) {
	logger.Section("Ingest")
	logger.Info("Ingesting %s", path)

	rows, err := tabular.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed %d rows", len(rows))

	filename := filepath.Base(path)
	source := domain.Source{
		ID:          uuid.NewString(),
		Name:        strings.TrimSuffix(filename, filepath.Ext(filename)),
		Filename:    filename,
		FileType:    strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		RecordCount: len(rows),
		Status:      domain.SourceStatusProcessing,
	}

	records := s.buildRecords(source.ID, rows)

	// Build the index before touching storage so a failed build leaves
	// no partial source behind.
	index := s.indexFactory.New()
	if err := index.Build(ctx, records); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	blob, err := index.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot index: %w", err)
	}

	source.Status = domain.SourceStatusReady
	if err := s.persist(ctx, source, records, blob); err != nil {
		return nil, err
	}

	s.registry.Register(source.ID, index)
	logger.Info("Source %s ready: %d records", source.ID, len(records))

	return &source, nil
}

// buildRecords converts parsed rows into domain records, preserving the
// file order in Position.
func (s *IngestService) buildRecords(sourceID string, rows []tabular.Row) []domain.Record {
	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.Record{
			ID:         uuid.NewString(),
			SourceID:   sourceID,
			Question:   row.Question,
			Answer:     row.Answer,
			Normalized: s.normalizer.Normalize(row.Question),
			Type:       textnorm.ClassifyType(row.Question),
			Position:   i,
		}
	}
	return records
}

// persist writes the source, its records, and its index blob. A failed
// write rolls back the earlier ones so no partial source survives.
func (s *IngestService) persist(
	ctx context.Context, source domain.Source, records []domain.Record, blob []byte,
) error {
	if err := s.sourceStore.Save(ctx, source); err != nil {
		return fmt.Errorf("save source: %w", err)
	}

	if err := s.recordStore.SaveRecords(ctx, records); err != nil {
		s.rollback(ctx, source.ID)
		return fmt.Errorf("save records: %w", err)
	}

	if err := s.indexStore.PutIndex(ctx, source.ID, blob); err != nil {
		s.rollback(ctx, source.ID)
		return fmt.Errorf("save index: %w", err)
	}

	return nil
}

// rollback best-effort removes a partially persisted source.
func (s *IngestService) rollback(ctx context.Context, sourceID string) {
	logger.Warn("Rolling back partial source %s", sourceID)
	if err := s.recordStore.DeleteRecords(ctx, sourceID); err != nil {
		logger.Warn("Rollback: delete records: %v", err)
	}
	if err := s.indexStore.DeleteIndex(ctx, sourceID); err != nil {
		logger.Warn("Rollback: delete index: %v", err)
	}
	if err := s.sourceStore.Delete(ctx, sourceID); err != nil {
		logger.Warn("Rollback: delete source: %v", err)
	}
}
