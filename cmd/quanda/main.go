// Command quanda is a retrieval-based Q&A assistant over local
// knowledge-base spreadsheets.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/config/file"
	embedollama "github.com/custodia-labs/quanda-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/embedding/tfidf"
	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/index/bruteforce"
	llmollama "github.com/custodia-labs/quanda-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/quanda-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quanda-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quanda-cli/internal/core/services"
	"github.com/custodia-labs/quanda-cli/internal/logger"
	"github.com/custodia-labs/quanda-cli/internal/textnorm"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialize)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// initialize wires the adapters and services for the chosen data
// directory. Runs once, after persistent flags are parsed.
func initialize(dataDir string) error {
	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	sourceStore := store.SourceStore()
	recordStore := store.RecordStore()
	indexStore := store.IndexStore()

	factory := bruteforce.NewFactory(embedderFor(settings.Embedding))
	registry := services.NewIndexRegistry()
	restoreIndexes(context.Background(), sourceStore, indexStore, factory, registry)

	normalizer := textnorm.New()
	retriever := services.NewRetriever(normalizer, registry)

	resolveName := func(ctx context.Context, sourceID string) string {
		source, err := sourceStore.Get(ctx, sourceID)
		if err != nil {
			return ""
		}
		return source.DisplayName()
	}
	composer := services.NewAnswerComposer(llmFor(settings.LLM), resolveName)

	cli.SetServices(cli.Services{
		Ask:      services.NewAskService(retriever, composer, sourceStore, settingsService),
		Ingest:   services.NewIngestService(normalizer, factory, registry, sourceStore, recordStore, indexStore),
		Source:   services.NewSourceService(sourceStore, recordStore, indexStore, registry),
		Settings: settingsService,
	})
	return nil
}

// embedderFor returns a constructor for the configured embedding
// provider. Each index gets a fresh embedder; TF-IDF embedders are
// corpus-fitted and must not be shared.
func embedderFor(cfg domain.EmbeddingSettings) func() driven.EmbeddingService {
	if cfg.Provider == domain.AIProviderOllama {
		return func() driven.EmbeddingService {
			return embedollama.NewEmbeddingService(embedollama.Config{
				BaseURL: cfg.BaseURL,
				Model:   cfg.Model,
				UseGPU:  cfg.UseGPU,
			})
		}
	}
	return func() driven.EmbeddingService {
		return tfidf.New()
	}
}

// llmFor returns the language model handle, or nil when generation is
// disabled. A nil handle means answers are composed directly from the
// top matches.
func llmFor(cfg domain.LLMSettings) driven.LLMService {
	if !cfg.Enabled {
		return nil
	}
	return llmollama.NewLLMService(llmollama.LLMConfig{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
}

// restoreIndexes loads the persisted index of every ready source into
// the registry. A source whose index cannot be restored is skipped and
// stays queryable again after re-ingestion.
func restoreIndexes(
	ctx context.Context,
	sourceStore driven.SourceStore,
	indexStore driven.IndexStore,
	factory driven.VectorIndexFactory,
	registry *services.IndexRegistry,
) {
	sources, err := sourceStore.List(ctx)
	if err != nil {
		logger.Warn("List sources: %v", err)
		return
	}

	for _, source := range sources {
		if source.Status != domain.SourceStatusReady {
			continue
		}

		blob, err := indexStore.GetIndex(ctx, source.ID)
		if err != nil {
			logger.Warn("Load index for %s: %v", source.ID, err)
			continue
		}

		index := factory.New()
		if err := index.Restore(blob); err != nil {
			logger.Warn("Restore index for %s: %v", source.ID, err)
			continue
		}

		registry.Register(source.ID, index)
		logger.Debug("Restored index for %s (%d records)", source.DisplayName(), index.Len())
	}
}
