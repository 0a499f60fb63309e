package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quanda-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// msgNoSources is returned when no knowledge base has been ingested yet.
const msgNoSources = "Please upload a knowledge base file first."

// AskService orchestrates one question end to end: source selection,
// retrieval, and answer composition. At most one ask runs at a time;
// query-time failures degrade to textual answers rather than errors.
type AskService struct {
	retriever   *Retriever
	composer    *AnswerComposer
	sourceStore driven.SourceStore
	settings    driving.SettingsService

	busy atomic.Bool
}

// NewAskService creates a new ask service.
func NewAskService(
	retriever *Retriever,
	composer *AnswerComposer,
	sourceStore driven.SourceStore,
	settings driving.SettingsService,
) *AskService {
	return &AskService{
		retriever:   retriever,
		composer:    composer,
		sourceStore: sourceStore,
		settings:    settings,
	}
}

// Ask processes one question to completion and returns the answer text.
// A second concurrent call fails with domain.ErrQueryInProgress.
func (s *AskService) Ask(ctx context.Context, question string, opts driving.AskOptions) (string, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", domain.ErrQueryInProgress
	}
	defer s.busy.Store(false)

	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	sourceIDs, retrieval, err := s.prepare(ctx, opts)
	if err != nil {
		return "", err
	}
	if len(sourceIDs) == 0 {
		logger.Info("No ready sources")
		return msgNoSources, nil
	}

	query := s.retriever.PrepareQuery(question)
	candidates := s.retriever.Retrieve(ctx, query, sourceIDs, retrieval)

	multiSource := len(sourceIDs) > 1
	return s.composer.Compose(ctx, query, candidates, multiSource), nil
}

// Retrieve runs the retrieval stage only, without composing an answer.
// Shares the one-at-a-time guard with Ask.
func (s *AskService) Retrieve(
	ctx context.Context, question string, opts driving.AskOptions,
) ([]domain.Candidate, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrQueryInProgress
	}
	defer s.busy.Store(false)

	sourceIDs, retrieval, err := s.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(sourceIDs) == 0 {
		return []domain.Candidate{}, nil
	}

	query := s.retriever.PrepareQuery(question)
	return s.retriever.Retrieve(ctx, query, sourceIDs, retrieval), nil
}

// prepare resolves the sources to query and the effective retrieval
// settings for one ask.
func (s *AskService) prepare(
	ctx context.Context, opts driving.AskOptions,
) ([]string, domain.RetrievalSettings, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, domain.RetrievalSettings{}, fmt.Errorf("load settings: %w", err)
	}

	retrieval := settings.Retrieval
	if opts.MaxResults > 0 {
		retrieval.MaxResults = opts.MaxResults
	}
	retrieval = retrieval.Clamped()

	sourceIDs, err := s.selectSources(ctx, opts.SourceID, retrieval.SearchMultiple)
	if err != nil {
		return nil, domain.RetrievalSettings{}, err
	}

	return sourceIDs, retrieval, nil
}

// selectSources returns the IDs of the ready sources to query. An
// explicit source ID restricts the search to that source; otherwise all
// ready sources are queried, or just the first when multi-source search
// is disabled.
func (s *AskService) selectSources(ctx context.Context, sourceID string, multiple bool) ([]string, error) {
	if sourceID != "" {
		source, err := s.sourceStore.Get(ctx, sourceID)
		if err != nil {
			return nil, fmt.Errorf("get source %s: %w", sourceID, err)
		}
		if source.Status != domain.SourceStatusReady {
			logger.Warn("Source %s is not ready (status %s)", sourceID, source.Status)
			return []string{}, nil
		}
		return []string{sourceID}, nil
	}

	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	var ids []string
	for _, source := range sources {
		if source.Status != domain.SourceStatusReady {
			continue
		}
		ids = append(ids, source.ID)
		if !multiple {
			break
		}
	}

	return ids, nil
}
