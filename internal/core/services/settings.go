package services

import (
	"fmt"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMaxResults     = "retrieval.max_results"
	keySimThreshold   = "retrieval.similarity_threshold"
	keyTypeThreshold  = "retrieval.type_match_threshold"
	keySearchMultiple = "retrieval.search_multiple"
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedUseGPU    = "embedding.use_gpu"
	keyLLMEnabled     = "llm.enabled"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMModelPath   = "llm.model_path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings, falling back to defaults
// for unset keys.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Retrieval: domain.RetrievalSettings{
			MaxResults:          s.getInt(keyMaxResults, defaults.Retrieval.MaxResults),
			SimilarityThreshold: s.getFloat(keySimThreshold, defaults.Retrieval.SimilarityThreshold),
			TypeMatchThreshold:  s.getFloat(keyTypeThreshold, defaults.Retrieval.TypeMatchThreshold),
			SearchMultiple:      s.getBool(keySearchMultiple, defaults.Retrieval.SearchMultiple),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.configStore.GetString(keyEmbedModel),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL),
			UseGPU:   s.getBool(keyEmbedUseGPU, defaults.Embedding.UseGPU),
		},
		LLM: domain.LLMSettings{
			Enabled:   s.getBool(keyLLMEnabled, defaults.LLM.Enabled),
			Provider:  s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:     s.configStore.GetString(keyLLMModel),
			BaseURL:   s.configStore.GetString(keyLLMBaseURL),
			ModelPath: s.configStore.GetString(keyLLMModelPath),
		},
	}

	settings.Retrieval = settings.Retrieval.Clamped()
	return settings, nil
}

// Save validates, clamps, and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	retrieval := settings.Retrieval.Clamped()

	if err := s.configStore.Set(keyMaxResults, retrieval.MaxResults); err != nil {
		return fmt.Errorf("save max_results: %w", err)
	}
	if err := s.configStore.Set(keySimThreshold, retrieval.SimilarityThreshold); err != nil {
		return fmt.Errorf("save similarity_threshold: %w", err)
	}
	if err := s.configStore.Set(keyTypeThreshold, retrieval.TypeMatchThreshold); err != nil {
		return fmt.Errorf("save type_match_threshold: %w", err)
	}
	if err := s.configStore.Set(keySearchMultiple, retrieval.SearchMultiple); err != nil {
		return fmt.Errorf("save search_multiple: %w", err)
	}

	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if err := s.configStore.Set(keyEmbedUseGPU, settings.Embedding.UseGPU); err != nil {
		return fmt.Errorf("save embedding use_gpu: %w", err)
	}

	if err := s.configStore.Set(keyLLMEnabled, settings.LLM.Enabled); err != nil {
		return fmt.Errorf("save llm enabled: %w", err)
	}
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if err := s.configStore.Set(keyLLMModelPath, settings.LLM.ModelPath); err != nil {
		return fmt.Errorf("save llm model_path: %w", err)
	}

	return nil
}

// SetRetrieval updates the retrieval tunables.
func (s *SettingsService) SetRetrieval(retrieval domain.RetrievalSettings) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Retrieval = retrieval
	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	settings.Embedding.BaseURL = baseURL

	// The built-in embedder has no model or endpoint.
	if provider == domain.AIProviderTFIDF {
		settings.Embedding.Model = ""
		settings.Embedding.BaseURL = ""
	}

	return s.Save(settings)
}

// SetLLM configures the language model.
func (s *SettingsService) SetLLM(llm domain.LLMSettings) error {
	if llm.Enabled && !llm.Provider.IsValid() {
		return fmt.Errorf("invalid llm provider: %s", llm.Provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.LLM = llm
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
