package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSongsCmd(cc *cliContext) *cobra.Command {
	var popular bool
	var limit int

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List the song catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := cc.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			g, err := svc.Graph()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if popular {
				fmt.Fprintf(w, "%-5s %-40s %-25s %s\n", "ID", "NAME", "ARTIST", "LISTENERS")
				for _, sd := range g.PopularSongs(limit) {
					fmt.Fprintf(w, "%-5s %-40s %-25s %s\n",
						sd.Song.ID, sd.Song.Name, sd.Song.Artist, humanize.Comma(int64(sd.Listeners)))
				}
				return nil
			}

			songs := g.Songs()
			if limit > 0 && len(songs) > limit {
				songs = songs[:limit]
			}
			fmt.Fprintf(w, "  %-5s %-40s %-25s %-10s %s\n", "ID", "NAME", "ARTIST", "GENRE", "LENGTH")
			printSongs(w, songs)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&popular, "popular", "p", false, "Order by number of listeners")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of songs to show (0 for all)")

	return cmd
}
