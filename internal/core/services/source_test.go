package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

func newSourceFixture(t *testing.T) (*SourceService, *memory.SourceStore, *memory.RecordStore, *memory.IndexStore, *IndexRegistry) {
	t.Helper()
	sources := memory.NewSourceStore()
	records := memory.NewRecordStore()
	indexes := memory.NewIndexStore()
	registry := NewIndexRegistry()
	return NewSourceService(sources, records, indexes, registry), sources, records, indexes, registry
}

func TestSourceService_GetAndList(t *testing.T) {
	svc, sources, _, _, _ := newSourceFixture(t)
	ctx := context.Background()

	require.NoError(t, sources.Save(ctx, domain.Source{ID: "src-1", Name: "faq"}))

	got, err := svc.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, "faq", got.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSourceService_GetInvalidInput(t *testing.T) {
	svc, _, _, _, _ := newSourceFixture(t)

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceService_RemoveCascades(t *testing.T) {
	svc, sources, records, indexes, registry := newSourceFixture(t)
	ctx := context.Background()

	require.NoError(t, sources.Save(ctx, domain.Source{ID: "src-1"}))
	require.NoError(t, records.SaveRecords(ctx, []domain.Record{
		{ID: "r1", SourceID: "src-1", Question: "q", Answer: "a"},
	}))
	require.NoError(t, indexes.PutIndex(ctx, "src-1", []byte("blob")))
	registry.Register("src-1", &mockVectorIndex{})

	require.NoError(t, svc.Remove(ctx, "src-1"))

	_, err := sources.Get(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	recs, err := records.ListRecords(ctx, "src-1")
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = indexes.GetIndex(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Nil(t, registry.Get("src-1"))
}

func TestSourceService_RemoveNotFound(t *testing.T) {
	svc, _, _, _, _ := newSourceFixture(t)

	err := svc.Remove(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
