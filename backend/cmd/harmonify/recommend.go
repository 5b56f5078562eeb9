package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"harmonify/backend/internal/graph"
	"harmonify/backend/internal/state"
)

func newRecommendCmd(cc *cliContext) *cobra.Command {
	var req state.Request
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend USERNAME",
		Short: "Recommend songs from the listener most similar to a new user",
		Long: "Adds USERNAME with the five picked songs to the graph, finds the\n" +
			"best-matching listener and lists the songs you share and the ones\n" +
			"they listen to that you do not.",
		Example: "  harmonify recommend newbie --pick 1,5,20,42,99 --genre pop --duration medium",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]

			svc, closeFn, err := cc.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&req.SongIDs, "pick", nil, "The five song ids you like (comma separated)")
	cmd.Flags().StringVar(&req.Genre, "genre", "", "Preferred genre")
	cmd.Flags().StringVar(&req.Duration, "duration", "", "Preferred song length: short, medium or long")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name (defaults to USERNAME)")
	cmd.Flags().StringVar(&req.Age, "age", "", "Age")
	cmd.Flags().StringVar(&req.Province, "province", "", "Province")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("pick")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func printRecommendation(w io.Writer, rec *graph.Recommendation) {
	m := rec.Match
	fmt.Fprintf(w, "Best match: %s (%s, %s, %s)\n", m.Username, m.Name, m.Age, m.Province)
	fmt.Fprintf(w, "Score:      %d (%d%% match)\n", rec.Score, rec.MatchPercent)

	fmt.Fprintf(w, "\nSongs in common (%d):\n", len(rec.SongsInCommon))
	printSongs(w, rec.SongsInCommon)

	fmt.Fprintf(w, "\nRecommended (%d):\n", len(rec.SongsRecommended))
	if len(rec.SongsRecommended) == 0 {
		fmt.Fprintln(w, "  (none, you already listen to everything they do)")
	}
	printSongs(w, rec.SongsRecommended)
}

func printSongs(w io.Writer, songs []graph.Song) {
	for _, s := range songs {
		bucket, _ := s.Bucket()
		fmt.Fprintf(w, "  %-5s %-40s %-25s %-10s %s\n", s.ID, s.Name, s.Artist, s.Genre, bucket)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
