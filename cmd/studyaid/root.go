package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyaid/internal/config"
	"studyaid/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "studyaid",
	Short: "Single-page study aid with drills, flashcards and a tutor chat",
	Long: `studyaid serves a study page with multiple-choice drills, a flashcard
deck and a keyword tutor. The light/dark theme is remembered per browser;
everything else resets when the page is loaded again.

Running studyaid without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (YAML); STUDYAID_* environment variables override it")
}

// loadRuntime loads config and builds the logger shared by every subcommand
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.Server.Mode, cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}
