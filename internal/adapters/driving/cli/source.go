package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage ingested sources",
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sources",
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a source and its records",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

func init() {
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources ingested yet. Use 'quanda ingest <file>' to add one.")
		return nil
	}

	cmd.Println("Sources:")
	for _, s := range sources {
		cmd.Printf("  %s  %-20s %5d records  [%s]\n", s.ID, s.DisplayName(), s.RecordCount, s.Status)
	}
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	id := args[0]
	if err := sourceService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}

	cmd.Printf("Removed source %s\n", id)
	return nil
}
