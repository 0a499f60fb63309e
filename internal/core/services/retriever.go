package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/logger"
	"github.com/custodia-labs/quanda-cli/internal/textnorm"
)

// Retriever runs the nearest-neighbour retrieval stage: it searches the
// selected source indexes, merges the candidate pools, and applies the
// type-priority threshold filters.
type Retriever struct {
	normalizer *textnorm.Normalizer
	registry   *IndexRegistry
}

// NewRetriever creates a retriever over the given index registry.
func NewRetriever(normalizer *textnorm.Normalizer, registry *IndexRegistry) *Retriever {
	return &Retriever{
		normalizer: normalizer,
		registry:   registry,
	}
}

// PrepareQuery derives the normalized form and question type from the
// raw question text.
func (r *Retriever) PrepareQuery(question string) domain.Query {
	raw := strings.TrimSpace(question)
	return domain.Query{
		Raw:        raw,
		Normalized: r.normalizer.Normalize(raw),
		Type:       textnorm.ClassifyType(raw),
	}
}

// Retrieve searches the given sources and returns the filtered, ranked
// candidates. A failing or missing source index contributes zero
// candidates; the query continues over the remaining sources.
func (r *Retriever) Retrieve(
	ctx context.Context,
	query domain.Query,
	sourceIDs []string,
	settings domain.RetrievalSettings,
) []domain.Candidate {
	settings = settings.Clamped()

	logger.Section("Retrieval")
	logger.Debug("Query: %q (normalized %q, type %s)", query.Raw, query.Normalized, query.Type)
	logger.Debug("Sources: %d, k=%d", len(sourceIDs), domain.SearchK)

	// Gather up to k candidates from every selected source.
	var pool []domain.Candidate
	for _, sourceID := range sourceIDs {
		index := r.registry.Get(sourceID)
		if index == nil {
			logger.Warn("No index registered for source %s, skipping", sourceID)
			continue
		}

		hits, err := index.Search(ctx, query.Normalized, domain.SearchK)
		if err != nil {
			logger.Warn("Search failed for source %s: %v (skipping)", sourceID, err)
			continue
		}

		for _, hit := range hits {
			pool = append(pool, domain.Candidate{
				Record:   hit.Record,
				Distance: hit.Distance,
				SourceID: sourceID,
			})
		}
	}

	logger.Debug("Merged pool: %d candidates", len(pool))

	// Rank by distance; equal distances break ties on source ID so the
	// ordering is deterministic across runs.
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Distance != pool[j].Distance {
			return pool[i].Distance < pool[j].Distance
		}
		return pool[i].SourceID < pool[j].SourceID
	})

	// Type-matching candidates under the stricter threshold win outright.
	var filtered []domain.Candidate
	for _, c := range pool {
		if c.Record.Type == query.Type && c.Distance < settings.TypeMatchThreshold {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) > 0 {
		logger.Debug("Type-priority filter: %d candidates (type %s)", len(filtered), query.Type)
	} else {
		// Fall back to the type-agnostic threshold.
		for _, c := range pool {
			if c.Distance < settings.SimilarityThreshold {
				filtered = append(filtered, c)
			}
		}
		logger.Debug("Fallback filter: %d candidates", len(filtered))
	}

	if len(filtered) > settings.MaxResults {
		filtered = filtered[:settings.MaxResults]
	}

	logger.Info("Retrieval: %d candidates", len(filtered))
	return filtered
}
