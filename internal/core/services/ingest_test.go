package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/textnorm"
)

// failingRecordStore wraps the memory record store with injected failures.
type failingRecordStore struct {
	*memory.RecordStore
	saveErr error
}

func (f *failingRecordStore) SaveRecords(ctx context.Context, records []domain.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.RecordStore.SaveRecords(ctx, records)
}

// ingestFixture wires an IngestService over in-memory stores.
type ingestFixture struct {
	ingest   *IngestService
	sources  *memory.SourceStore
	records  *failingRecordStore
	indexes  *memory.IndexStore
	registry *IndexRegistry
	index    *mockVectorIndex
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	f := &ingestFixture{
		sources:  memory.NewSourceStore(),
		records:  &failingRecordStore{RecordStore: memory.NewRecordStore()},
		indexes:  memory.NewIndexStore(),
		registry: NewIndexRegistry(),
		index:    &mockVectorIndex{blob: []byte("serialized")},
	}
	f.ingest = NewIngestService(
		textnorm.New(),
		&mockIndexFactory{index: f.index},
		f.registry,
		f.sources,
		f.records,
		f.indexes,
	)
	return f
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const sampleCSV = "Question,Answer\n" +
	"What is Go?,A programming language.\n" +
	"Why use goroutines?,They are lightweight.\n"

func TestIngest_Success(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	source, err := f.ingest.IngestFile(ctx, writeCSV(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, "kb", source.Name)
	assert.Equal(t, "kb.csv", source.Filename)
	assert.Equal(t, "csv", source.FileType)
	assert.Equal(t, 2, source.RecordCount)
	assert.Equal(t, domain.SourceStatusReady, source.Status)

	// Source persisted.
	saved, err := f.sources.Get(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStatusReady, saved.Status)

	// Records persisted with normalization and classification applied.
	records, err := f.records.ListRecords(ctx, source.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "What is Go?", records[0].Question)
	assert.Equal(t, domain.QuestionWhat, records[0].Type)
	assert.NotEmpty(t, records[0].Normalized)
	assert.Equal(t, 0, records[0].Position)
	assert.Equal(t, domain.QuestionWhy, records[1].Type)
	assert.Equal(t, 1, records[1].Position)

	// Index built, snapshotted, and registered.
	assert.Len(t, f.index.built, 2)
	blob, err := f.indexes.GetIndex(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("serialized"), blob)
	assert.NotNil(t, f.registry.Get(source.ID))
}

func TestIngest_UnsupportedFormat(t *testing.T) {
	f := newIngestFixture(t)

	path := filepath.Join(t.TempDir(), "kb.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0600))

	_, err := f.ingest.IngestFile(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngest_MissingColumns(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.ingest.IngestFile(context.Background(),
		writeCSV(t, "Q,A\nWhat is Go?,A language.\n"))
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}

func TestIngest_BuildFailureLeavesNothingBehind(t *testing.T) {
	f := newIngestFixture(t)
	f.index.buildErr = errors.New("embedding failed")
	ctx := context.Background()

	_, err := f.ingest.IngestFile(ctx, writeCSV(t, sampleCSV))
	require.Error(t, err)

	sources, err := f.sources.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
	assert.Equal(t, 0, f.registry.Len())
}

func TestIngest_StoreFailureRollsBack(t *testing.T) {
	f := newIngestFixture(t)
	f.records.saveErr = errors.New("disk full")
	ctx := context.Background()

	_, err := f.ingest.IngestFile(ctx, writeCSV(t, sampleCSV))
	require.Error(t, err)

	// The partially saved source was rolled back.
	sources, err := f.sources.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)
	assert.Equal(t, 0, f.registry.Len())
}
