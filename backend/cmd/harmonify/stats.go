package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCmd(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the size of the loaded graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := cc.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			status, err := svc.Status()
			if err != nil {
				return err
			}
			g, err := svc.Graph()
			if err != nil {
				return err
			}

			s := status.Stats
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Source:  %s\n", cc.cfg.DataSource)
			fmt.Fprintf(w, "Users:   %s\n", humanize.Comma(int64(s.Users)))
			fmt.Fprintf(w, "Songs:   %s\n", humanize.Comma(int64(s.Songs)))
			fmt.Fprintf(w, "Listens: %s\n", humanize.Comma(int64(s.Edges)))
			fmt.Fprintf(w, "Genres:  %s\n", strings.Join(g.Genres(), ", "))
			fmt.Fprintf(w, "Loaded:  %s\n", humanize.Time(status.LoadedAt))
			return nil
		},
	}
}
