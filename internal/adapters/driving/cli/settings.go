package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure retrieval tunables and AI providers.

Keys:
  max_results           answers per question (1-10)
  similarity_threshold  distance cutoff for any match
  type_match_threshold  stricter cutoff for type-matching hits
  search_multiple       search every ready source (true/false)
  embedding.provider    tfidf or ollama
  embedding.model       embedding model (ollama only)
  embedding.base_url    embedding endpoint (ollama only)
  embedding.use_gpu     request GPU acceleration (true/false)
  llm.enabled           generate answers with a language model
  llm.provider          ollama
  llm.model             language model name
  llm.base_url          language model endpoint
  llm.model_path        local model file path`,
	RunE: runSettingsGet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show all settings or one value",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	values := settingsValues(settings)

	if len(args) == 1 {
		value, ok := values[args[0]]
		if !ok {
			return fmt.Errorf("unknown setting %q", args[0])
		}
		cmd.Println(value)
		return nil
	}

	cmd.Println("[retrieval]")
	cmd.Printf("  max_results          = %s\n", values["max_results"])
	cmd.Printf("  similarity_threshold = %s\n", values["similarity_threshold"])
	cmd.Printf("  type_match_threshold = %s\n", values["type_match_threshold"])
	cmd.Printf("  search_multiple      = %s\n", values["search_multiple"])
	cmd.Println("[embedding]")
	cmd.Printf("  provider = %s\n", values["embedding.provider"])
	cmd.Printf("  model    = %s\n", values["embedding.model"])
	cmd.Printf("  base_url = %s\n", values["embedding.base_url"])
	cmd.Printf("  use_gpu  = %s\n", values["embedding.use_gpu"])
	cmd.Println("[llm]")
	cmd.Printf("  enabled    = %s\n", values["llm.enabled"])
	cmd.Printf("  provider   = %s\n", values["llm.provider"])
	cmd.Printf("  model      = %s\n", values["llm.model"])
	cmd.Printf("  base_url   = %s\n", values["llm.base_url"])
	cmd.Printf("  model_path = %s\n", values["llm.model_path"])
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// settingsValues flattens settings into displayable key/value strings.
func settingsValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"max_results":          strconv.Itoa(s.Retrieval.MaxResults),
		"similarity_threshold": strconv.FormatFloat(s.Retrieval.SimilarityThreshold, 'g', -1, 64),
		"type_match_threshold": strconv.FormatFloat(s.Retrieval.TypeMatchThreshold, 'g', -1, 64),
		"search_multiple":      strconv.FormatBool(s.Retrieval.SearchMultiple),
		"embedding.provider":   s.Embedding.Provider.String(),
		"embedding.model":      s.Embedding.Model,
		"embedding.base_url":   s.Embedding.BaseURL,
		"embedding.use_gpu":    strconv.FormatBool(s.Embedding.UseGPU),
		"llm.enabled":          strconv.FormatBool(s.LLM.Enabled),
		"llm.provider":         s.LLM.Provider.String(),
		"llm.model":            s.LLM.Model,
		"llm.base_url":         s.LLM.BaseURL,
		"llm.model_path":       s.LLM.ModelPath,
	}
}

// applySetting mutates one settings field from its string form.
func applySetting(s *domain.AppSettings, key, value string) error {
	switch key {
	case "max_results":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_results must be an integer: %w", err)
		}
		if n < domain.MinMaxResults || n > domain.MaxMaxResults {
			return fmt.Errorf("max_results must be between %d and %d",
				domain.MinMaxResults, domain.MaxMaxResults)
		}
		s.Retrieval.MaxResults = n
	case "similarity_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("similarity_threshold must be a number: %w", err)
		}
		s.Retrieval.SimilarityThreshold = f
	case "type_match_threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("type_match_threshold must be a number: %w", err)
		}
		s.Retrieval.TypeMatchThreshold = f
	case "search_multiple":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("search_multiple must be true or false: %w", err)
		}
		s.Retrieval.SearchMultiple = b
	case "embedding.provider":
		p := domain.AIProvider(value)
		if !p.IsValid() {
			return fmt.Errorf("unknown embedding provider %q", value)
		}
		s.Embedding.Provider = p
	case "embedding.model":
		s.Embedding.Model = value
	case "embedding.base_url":
		s.Embedding.BaseURL = value
	case "embedding.use_gpu":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("embedding.use_gpu must be true or false: %w", err)
		}
		s.Embedding.UseGPU = b
	case "llm.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("llm.enabled must be true or false: %w", err)
		}
		s.LLM.Enabled = b
		if b && s.LLM.Provider == "" {
			s.LLM.Provider = domain.AIProviderOllama
		}
	case "llm.provider":
		p := domain.AIProvider(value)
		if !p.IsValid() {
			return fmt.Errorf("unknown llm provider %q", value)
		}
		s.LLM.Provider = p
	case "llm.model":
		s.LLM.Model = value
	case "llm.base_url":
		s.LLM.BaseURL = value
	case "llm.model_path":
		s.LLM.ModelPath = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
