package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a knowledge-base spreadsheet",
	Long: `Parses a CSV or XLSX file with Question and Answer columns,
builds the source's search index, and stores everything locally.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	source, err := ingestService.IngestFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s: %d records\n", source.DisplayName(), source.RecordCount)
	cmd.Printf("Source ID: %s\n", source.ID)
	return nil
}
