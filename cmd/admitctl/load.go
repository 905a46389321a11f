package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/admitscore/internal/loadgen"
)

func newLoadCmd() *cobra.Command {
	cfg := loadgen.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Submit generated candidates to admitd and verify they are scored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadgen.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"generated=%d accepted=%d duplicate=%d failed=%d verified=%d incomplete=%d duration=%s rate=%.1f/s\n",
				stats.Generated, stats.Accepted, stats.Duplicate, stats.Failed,
				stats.Verified, stats.Incomplete, stats.Duration, stats.Throughput())
			if stats.Failed > 0 || stats.Incomplete > 0 {
				return fmt.Errorf("%d failed and %d incomplete submissions", stats.Failed, stats.Incomplete)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of admitd")
	f.IntVarP(&cfg.Candidates, "candidates", "n", cfg.Candidates, "number of candidates to submit")
	f.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "concurrent requests")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.DurationVar(&cfg.PollTimeout, "poll-timeout", cfg.PollTimeout, "time to wait for each submission's results")
	f.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "delay between result polls")
	f.StringSliceVarP(&cfg.UniversityIDs, "university", "u", nil, "university ids to score; default all")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "candidate generator seed")
	return cmd
}
