package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) cannedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canned",
		Short: "Browse the canned phrase table used by the demo translator",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [species]",
		Short: "List species, or the moods and phrases of one species",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, sp := range a.table.Species() {
					fmt.Fprintf(a.out, "%s\t%s\n", sp, strings.Join(a.table.Moods(sp), ","))
				}
				return nil
			}
			moods := a.table.Moods(args[0])
			if len(moods) == 0 {
				return fmt.Errorf("unknown species %q", args[0])
			}
			for _, m := range moods {
				for _, p := range a.table.Phrases(args[0], m) {
					fmt.Fprintf(a.out, "%s\t%s\n", m, p)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pick <species> [mood]",
		Short: "Print one random phrase, with the same fallbacks as the API",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			mood := ""
			if len(args) == 2 {
				mood = args[1]
			}
			p, ok := a.table.Pick(args[0], mood)
			if !ok {
				return fmt.Errorf("no phrases for %q", args[0])
			}
			fmt.Fprintln(a.out, p)
			return nil
		},
	})

	return cmd
}
