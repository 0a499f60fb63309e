package driving

import "github.com/custodia-labs/quanda-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates, clamps, and persists application settings.
	Save(settings *domain.AppSettings) error

	// SetRetrieval updates the retrieval tunables.
	SetRetrieval(settings domain.RetrievalSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, baseURL string) error

	// SetLLM configures the language model.
	SetLLM(settings domain.LLMSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
