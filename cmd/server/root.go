package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:   "labour-intake",
		Short: "Multilingual intake and scoring of skilled workers",
		Long: "labour-intake interviews workers in their own language, scores their answers and " +
			"stores a searchable profile. Without a subcommand it serves the HTTP API.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of a running server (intake and search commands)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", 3*time.Minute, "request timeout for API calls")
}
