package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quanda-cli/internal/core/domain"
	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
)

var (
	askSource string
	askLimit  int
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the ingested knowledge bases",
	Long: `Retrieves the most similar stored questions and composes an answer.

By default every ready source is searched and the top matches are
printed directly. With an LLM configured, the matches are rewritten
into a single answer instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSource, "source", "s", "", "restrict the search to one source ID")
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum number of answers (1-10)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the ranked matches as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if askService == nil {
		return errors.New("ask service not configured")
	}

	opts := driving.AskOptions{
		SourceID:   askSource,
		MaxResults: askLimit,
	}

	if askJSON {
		candidates, err := askService.Retrieve(cmd.Context(), question, opts)
		if err != nil {
			return fmt.Errorf("retrieve failed: %w", err)
		}
		return outputMatchesJSON(cmd, candidates)
	}

	answer, err := askService.Ask(cmd.Context(), question, opts)
	if err != nil {
		if errors.Is(err, domain.ErrQueryInProgress) {
			return errors.New("another question is already being processed")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}

// matchJSON is the JSON shape for one ranked match.
type matchJSON struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
	SourceID string  `json:"source_id"`
}

func outputMatchesJSON(cmd *cobra.Command, candidates []domain.Candidate) error {
	matches := make([]matchJSON, len(candidates))
	for i, c := range candidates {
		matches[i] = matchJSON{
			Question: c.Record.Question,
			Answer:   c.Record.Answer,
			Type:     c.Record.Type.String(),
			Distance: c.Distance,
			SourceID: c.SourceID,
		}
	}

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
