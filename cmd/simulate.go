package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/motorcast/internal/simulate"
)

func newSimulateCommand() *cobra.Command {
	cfg := simulate.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a running service with synthetic learners",
		Long: `Create synthetic learners with improving, stable, declining or mixed
score profiles, submit their evaluations concurrently, wait for ingestion and
verify that every forecast stays within the score scale.

Evaluations per learner must not exceed the service's max_history.`,
		Example: `  motorcast simulate --learners 500 --evaluations 8 --workers 16`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := simulate.Run(cmd.Context(), cfg)
			if stats != nil {
				simulate.Report(cmd.OutOrStdout(), stats)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Base URL of the service")
	f.IntVar(&cfg.Learners, "learners", cfg.Learners, "Number of learners to create")
	f.IntVar(&cfg.Evaluations, "evaluations", cfg.Evaluations, "Evaluations per learner")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent learners in flight")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.DurationVar(&cfg.WaitTimeout, "wait", cfg.WaitTimeout, "How long to wait for ingestion")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the synthetic data")
	f.StringVar(&cfg.OutputFile, "output", "", "Write the generated learners to this JSON file")
	return cmd
}
