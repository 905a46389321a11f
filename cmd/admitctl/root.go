package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/admitscore/internal/adapters/loader"
	"github.com/okian/admitscore/pkg/logger"
)

type rootOptions struct {
	files    loader.Files
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "admitctl",
		Short:         "Inspect catalogs, score candidates offline and load-test admitd",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetOutput(cmd.ErrOrStderr())
			if err := logger.Init(); err != nil {
				return err
			}
			return logger.SetLevelString(opts.logLevel)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.files.Conditions, "conditions", "data/conditions.yaml", "university conditions file")
	pf.StringVar(&opts.files.Tables, "tables", "data/tables.yaml", "score tables file")
	pf.StringVar(&opts.files.Cutoffs, "cutoffs", "data/cutoffs.yaml", "cutoff tables file, empty to skip")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newPatternsCmd(opts), newScoreCmd(opts), newLoadCmd())
	return root
}
