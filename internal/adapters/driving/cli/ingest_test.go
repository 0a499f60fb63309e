package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file]", ingestCmd.Use)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_ReportsIngestedSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingested := ""
	ingestService = &MockIngestService{
		IngestFileFunc: func(_ context.Context, path string) (*domain.Source, error) {
			ingested = path
			return &domain.Source{ID: "src-9", Name: "handbook", RecordCount: 120}, nil
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "handbook.xlsx"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "handbook.xlsx", ingested)
	assert.Contains(t, buf.String(), "Ingested handbook: 120 records")
	assert.Contains(t, buf.String(), "Source ID: src-9")
}

func TestIngestCmd_UnsupportedFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestService = &MockIngestService{
		IngestFileFunc: func(_ context.Context, _ string) (*domain.Source, error) {
			return nil, domain.ErrUnsupportedFormat
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "notes.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
