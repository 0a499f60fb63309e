package driving

import (
	"context"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// AskService answers user questions against the ingested knowledge bases.
type AskService interface {
	// Ask processes one question to completion and returns the answer
	// text. Query-time failures degrade to textual answers; an error is
	// returned only for caller mistakes (another ask in flight).
	Ask(ctx context.Context, question string, opts AskOptions) (string, error)

	// Retrieve runs the retrieval stage only and returns the ranked
	// candidates without composing an answer.
	Retrieve(ctx context.Context, question string, opts AskOptions) ([]domain.Candidate, error)
}

// AskOptions configures a single ask.
type AskOptions struct {
	// SourceID restricts the search to one source. Empty means all
	// ready sources when multi-source search is enabled.
	SourceID string

	// MaxResults overrides the configured answer limit when > 0.
	// Clamped to the legal range.
	MaxResults int
}
