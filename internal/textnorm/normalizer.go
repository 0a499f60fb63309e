package textnorm

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

// tokenPattern matches runs of letters and digits, keeping internal
// apostrophes out so "don't" splits into alphanumeric survivors only.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Normalizer converts raw question text into its normalised form.
type Normalizer struct {
	stopwords map[string]struct{}
	lemmas    map[string]string
	degraded  bool
}

// New creates a normaliser with the full linguistic tables.
func New() *Normalizer {
	return &Normalizer{
		stopwords: defaultStopwords(),
		lemmas:    irregularLemmas(),
	}
}

// NewDegraded creates a normaliser without linguistic tables.
// It only lowercases and trims, matching the fallback behaviour when
// stopword or lemma resources cannot be loaded.
func NewDegraded() *Normalizer {
	return &Normalizer{degraded: true}
}

// Normalize lowercases, tokenizes, drops stopwords and non-alphanumeric
// tokens, lemmatizes the survivors, and joins them with single spaces.
// If every token is filtered out, the trimmed lowercased input is
// returned instead so non-empty input never normalises to nothing.
func (n *Normalizer) Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if n.degraded || lowered == "" {
		return lowered
	}

	tokens := tokenPattern.FindAllString(lowered, -1)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, n.lemmatize(tok))
	}

	if len(kept) == 0 {
		return lowered
	}
	return strings.Join(kept, " ")
}

// lemmatize reduces a token to a base form. Irregular nouns come from a
// lookup table; regular plurals are stripped by suffix rules. The rules
// are idempotent: applying them to their own output changes nothing.
func (n *Normalizer) lemmatize(tok string) string {
	if base, ok := n.lemmas[tok]; ok {
		return base
	}

	switch {
	case len(tok) > 4 && strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case len(tok) > 4 && strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "xes"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "s") &&
		!strings.HasSuffix(tok, "ss") && !strings.HasSuffix(tok, "us") &&
		!strings.HasSuffix(tok, "is"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}

// ClassifyType returns the question type for the given question text.
// It inspects the first whitespace-delimited token of the lowercased,
// trimmed question. Empty or whitespace-only input classifies as "other".
func ClassifyType(question string) domain.QuestionType {
	fields := strings.Fields(strings.ToLower(question))
	if len(fields) == 0 {
		return domain.QuestionOther
	}

	switch first := fields[0]; first {
	case "what", "why", "how", "when", "who":
		return domain.QuestionType(first)
	default:
		return domain.QuestionOther
	}
}
