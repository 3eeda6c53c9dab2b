package commands

import (
	"calgrid/internal/config"
	"calgrid/internal/dataset"
	"calgrid/internal/logging"
	"calgrid/internal/server"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	registry *dataset.Registry
)

var rootCmd = &cobra.Command{
	Use:   "calgrid",
	Short: "calgrid is the data engine behind a calendar analytics widget",
	Long: `A tool server that aggregates tabular datasets per calendar date, partitions the
totals into intensity bins, and selects the initially focused date for a radial
calendar visualization. Dashboard hosts talk to it over JSON-RPC on stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		registry = dataset.NewRegistry()
		if loaded, err := registry.LoadDir(cfg.DatasetDir); err != nil {
			log.Warn().Err(err).Str("dir", cfg.DatasetDir).Msg("Dataset scan incomplete")
		} else if loaded > 0 {
			log.Info().Int("datasets", loaded).Str("dir", cfg.DatasetDir).Msg("Datasets loaded")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("calgrid starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("Tool server starting stdio loop")
		srv := server.NewServer(cfg, registry)
		if err := srv.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Server loop failed")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
