package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"harmonify/backend/internal/graph"
)

func newSimilarCmd(cc *cliContext) *cobra.Command {
	var prefs graph.Preferences
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "similar USERNAME",
		Short: "Rank existing listeners by similarity to USERNAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := cc.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ranked, err := svc.Similar(cmd.Context(), args[0], prefs, limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ranked)
			}

			w := cmd.OutOrStdout()
			if len(ranked) == 0 {
				fmt.Fprintf(w, "No listener shares a song with %s\n", args[0])
				return nil
			}
			fmt.Fprintf(w, "%-4s %-20s %6s %6s %6s %8s\n", "#", "USER", "SONGS", "GENRE", "LENGTH", "SCORE")
			for i, s := range ranked {
				fmt.Fprintf(w, "%-4d %-20s %6d %6d %6d %8d\n",
					i+1, s.Other, s.CommonSongs, s.CommonGenre, s.CommonDuration, s.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefs.Genre, "genre", "", "Genre that earns shared songs a bonus")
	cmd.Flags().StringVar(&prefs.Duration, "duration", "", "Length bucket that earns shared songs a bonus")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of listeners to show (default RANK_LIMIT)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
