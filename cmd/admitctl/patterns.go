package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/admitscore/internal/adapters/loader"
	"github.com/okian/admitscore/internal/domain/pattern"
)

func newPatternsCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Group universities by weight pattern",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loader.Load(cmd.Context(), root.files)
			if err != nil {
				return err
			}
			defer cat.Close()

			reg := pattern.Build(cat.Conditions())
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(reg.Groups())
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tCOUNT\tUNIVERSITIES")
			for _, st := range reg.Stats() {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", st.Key, st.Count, strings.Join(reg.IDs(st.Key), ","))
			}
			fmt.Fprintf(tw, "%d patterns over %d universities\n", reg.Len(), cat.Len())
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print pattern groups as JSON")
	return cmd
}
