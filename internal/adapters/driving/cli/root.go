// Package cli implements the Cobra command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quanda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quanda-cli/internal/logger"
)

// version is set by the build via SetVersion.
var version = "dev"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Services the commands call, injected by the composition root.
var (
	askService      driving.AskService
	ingestService   driving.IngestService
	sourceService   driving.SourceService
	settingsService driving.SettingsService
)

// initializer builds the services once the persistent flags are parsed.
var initializer func(dataDir string) error

var rootCmd = &cobra.Command{
	Use:   "quanda",
	Short: "Retrieval-based Q&A over your own knowledge bases",
	Long: `Quanda answers questions from spreadsheets of question/answer pairs.

Ingest CSV or XLSX files with Question and Answer columns, then ask
questions against them. Retrieval runs fully offline by default; an
optional local Ollama model can rewrite the top matches into a single
answer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if initializer != nil {
			return initializer(dataDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.quanda)")
}

// Services bundles the driving ports the CLI commands call.
type Services struct {
	Ask      driving.AskService
	Ingest   driving.IngestService
	Source   driving.SourceService
	Settings driving.SettingsService
}

// SetServices injects the services the commands use.
func SetServices(s Services) {
	askService = s.Ask
	ingestService = s.Ingest
	sourceService = s.Source
	settingsService = s.Settings
}

// SetInitializer registers a hook that runs after flag parsing and
// before any command, typically to build the services for the chosen
// data directory.
func SetInitializer(fn func(dataDir string) error) {
	initializer = fn
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
