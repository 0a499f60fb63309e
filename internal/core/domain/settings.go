package domain

const unknownDescription = "Unknown"

// Retrieval tuning defaults. Distances come straight from the embedding
// space, so the thresholds are empirically tuned constants rather than
// normalised probabilities.
const (
	// DefaultMaxResults is the default answer count per question.
	DefaultMaxResults = 3

	// MinMaxResults and MaxMaxResults bound the user-configurable limit.
	MinMaxResults = 1
	MaxMaxResults = 10

	// DefaultSimilarityThreshold is the fallback distance cutoff applied
	// regardless of question type.
	DefaultSimilarityThreshold = 0.5

	// DefaultTypeMatchThreshold is the stricter distance cutoff for
	// candidates whose question type matches the query.
	DefaultTypeMatchThreshold = 0.3

	// SearchK is how many neighbours each source index is asked for
	// before filtering.
	SearchK = 5
)

// RetrievalSettings holds the tunable retrieval behaviour. It is passed
// explicitly into the retriever and composer rather than living in
// process-wide globals, so tests can override per instance.
type RetrievalSettings struct {
	// MaxResults is the maximum number of answers returned, clamped
	// to [MinMaxResults, MaxMaxResults].
	MaxResults int

	// SimilarityThreshold is the type-agnostic distance cutoff.
	SimilarityThreshold float64

	// TypeMatchThreshold is the distance cutoff for type-matching hits.
	TypeMatchThreshold float64

	// SearchMultiple enables querying every ready source; when false,
	// exactly one source is queried.
	SearchMultiple bool
}

// Clamped returns a copy with MaxResults forced into its legal range and
// zero thresholds replaced by defaults.
func (r RetrievalSettings) Clamped() RetrievalSettings {
	if r.MaxResults < MinMaxResults {
		r.MaxResults = MinMaxResults
	}
	if r.MaxResults > MaxMaxResults {
		r.MaxResults = MaxMaxResults
	}
	if r.SimilarityThreshold <= 0 {
		r.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if r.TypeMatchThreshold <= 0 {
		r.TypeMatchThreshold = DefaultTypeMatchThreshold
	}
	return r
}

// DefaultRetrievalSettings returns retrieval settings with defaults.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		MaxResults:          DefaultMaxResults,
		SimilarityThreshold: DefaultSimilarityThreshold,
		TypeMatchThreshold:  DefaultTypeMatchThreshold,
		SearchMultiple:      true,
	}
}

// AIProvider identifies an embedding or LLM provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderTFIDF is the built-in TF-IDF embedder. Fully offline.
	AIProviderTFIDF AIProvider = "tfidf"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderTFIDF, AIProviderOllama:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderTFIDF:
		return "TF-IDF (built-in, offline)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model identifier (Ollama only).
	Model string

	// BaseURL is the API endpoint (Ollama only).
	BaseURL string

	// UseGPU requests hardware acceleration where the provider
	// supports it.
	UseGPU bool
}

// LLMSettings holds language model configuration. The model is optional;
// when disabled or unreachable, answers degrade to direct concatenation
// of the top matches.
type LLMSettings struct {
	// Enabled turns LLM answer generation on.
	Enabled bool

	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (Ollama only).
	BaseURL string

	// ModelPath is a local model file path, for providers that load
	// models from disk.
	ModelPath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Retrieval holds retrieval behaviour settings.
	Retrieval RetrievalSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds language model settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults: built-in
// TF-IDF embeddings and no language model.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Retrieval: DefaultRetrievalSettings(),
		Embedding: EmbeddingSettings{
			Provider: AIProviderTFIDF,
		},
		LLM: LLMSettings{
			Enabled: false,
		},
	}
}
