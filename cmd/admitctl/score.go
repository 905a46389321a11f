package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/admitscore/internal/adapters/loader"
	service "github.com/okian/admitscore/internal/app"
	"github.com/okian/admitscore/internal/domain/model"
)

func newScoreCmd(root *rootOptions) *cobra.Command {
	var (
		candidateFile string
		universities  []string
		asJSON        bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a candidate file against the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cand, err := readCandidate(candidateFile)
			if err != nil {
				return err
			}
			cat, err := loader.Load(cmd.Context(), root.files)
			if err != nil {
				return err
			}
			defer cat.Close()

			evs, err := service.New(cat).Score(cmd.Context(), cand, universities)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(evs)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "UNIVERSITY\tSCORE\tRISK\tDISTANCE\tPERCENTILE\tNOTE")
			for _, ev := range evs {
				r := ev.Result
				if !r.Success {
					fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s: %s\n", r.UniversityID, r.FailureKind, r.FailureReason)
					continue
				}
				riskCol, distCol := "-", "-"
				if ev.Risk != nil {
					riskCol = fmt.Sprintf("%+d %s", ev.Risk.Code, ev.Risk.Label)
					distCol = decimal.NewFromFloat(ev.Risk.DistanceFromCutoff).StringFixed(2)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.UniversityID,
					decimal.NewFromFloat(r.Score).StringFixed(2), riskCol, distCol,
					decimal.NewFromFloat(r.CumulativePercentile).StringFixed(2))
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&candidateFile, "candidate", "c", "", "candidate file (YAML or JSON)")
	f.StringSliceVarP(&universities, "university", "u", nil, "university ids to score; default all")
	f.BoolVar(&asJSON, "json", false, "print evaluations as JSON")
	_ = cmd.MarkFlagRequired("candidate")
	return cmd
}

// readCandidate decodes a candidate; YAML decoding also accepts JSON.
func readCandidate(path string) (model.Candidate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Candidate{}, fmt.Errorf("read candidate: %w", err)
	}
	var cand model.Candidate
	if err := yaml.Unmarshal(b, &cand); err != nil {
		return model.Candidate{}, fmt.Errorf("decode candidate %s: %w", path, err)
	}
	return cand, nil
}
