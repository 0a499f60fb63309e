package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/logger"
)

// User-facing answer strings. These are part of the CLI contract.
const (
	msgNoResults = "No relevant answers found in the knowledge base."
	msgTopHeader = "Top Matching Answers:"
)

// llmGenerateOptions bound the optional answer-generation call.
const (
	llmMaxTokens   = 250
	llmTemperature = 0.1
)

// SourceNameResolver maps a source ID to a display name for answer
// labelling. May return "" when the name cannot be resolved.
type SourceNameResolver func(ctx context.Context, sourceID string) string

// AnswerComposer turns ranked candidates into the final answer text.
// With no language model it concatenates the top matches; with one it
// generates a summarised answer from them. Composition never fails:
// model errors degrade to an error message string.
type AnswerComposer struct {
	llm         driven.LLMService
	resolveName SourceNameResolver
}

// NewAnswerComposer creates a composer. The llm parameter is optional
// (can be nil); resolveName is optional and only used for multi-source
// labelling.
func NewAnswerComposer(llm driven.LLMService, resolveName SourceNameResolver) *AnswerComposer {
	return &AnswerComposer{
		llm:         llm,
		resolveName: resolveName,
	}
}

// SetLLM replaces the language model handle. Passing nil reverts to
// direct composition.
func (c *AnswerComposer) SetLLM(llm driven.LLMService) {
	c.llm = llm
}

// Compose produces the answer text for a query and its candidates.
func (c *AnswerComposer) Compose(
	ctx context.Context, query domain.Query, candidates []domain.Candidate, multiSource bool,
) string {
	if len(candidates) == 0 {
		return msgNoResults
	}

	if c.llm == nil {
		return c.composeDirect(ctx, candidates, multiSource)
	}
	return c.composeWithLLM(ctx, query, candidates)
}

// composeDirect concatenates the top matches into a numbered list.
func (c *AnswerComposer) composeDirect(
	ctx context.Context, candidates []domain.Candidate, multiSource bool,
) string {
	var b strings.Builder
	b.WriteString(msgTopHeader)
	b.WriteString("\n")

	for i, cand := range candidates {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Answer %d:\n", i+1)
		fmt.Fprintf(&b, "Q: %s\n", cand.Record.Question)
		fmt.Fprintf(&b, "A: %s\n", cand.Record.Answer)

		if multiSource {
			if name := c.sourceName(ctx, cand.SourceID); name != "" {
				fmt.Fprintf(&b, "[Source: %s]\n", name)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// composeWithLLM asks the language model to answer from the matched
// context. Model failure degrades to a textual error answer.
func (c *AnswerComposer) composeWithLLM(
	ctx context.Context, query domain.Query, candidates []domain.Candidate,
) string {
	prompt := buildAnswerPrompt(query, candidates)
	logger.Debug("LLM prompt: %d chars, %d context entries", len(prompt), len(candidates))

	answer, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   llmMaxTokens,
		Temperature: llmTemperature,
	})
	if err != nil {
		logger.Warn("LLM generation failed: %v", err)
		return fmt.Sprintf("Error generating answer: %v", err)
	}

	return strings.TrimSpace(answer)
}

// buildAnswerPrompt assembles the generation prompt from the matched
// question/answer pairs.
func buildAnswerPrompt(query domain.Query, candidates []domain.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Answer this %s question using the context below.\n\nContext:\n", query.Type)
	for _, cand := range candidates {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", cand.Record.Question, cand.Record.Answer)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n\nAnswer clearly and concisely.", query.Raw)
	return b.String()
}

// sourceName resolves the display label for a source.
func (c *AnswerComposer) sourceName(ctx context.Context, sourceID string) string {
	if c.resolveName == nil {
		return ""
	}
	return c.resolveName(ctx, sourceID)
}
