package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"harmonify/backend/internal/catalog"
	"harmonify/backend/internal/datasource"
	"harmonify/backend/internal/graph"
)

func newSeedCmd(cc *cliContext) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the CSV files into Neo4j",
		Long: "Reads the song catalogue and listening CSVs, checks that they load into\n" +
			"a graph, then merges them into Neo4j as (:User)-[:LISTENS_TO]->(:Song).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			csv := catalog.NewCSVSource(cc.cfg.SongsCSV, cc.cfg.ListensCSV, cc.cfg.CSVHasHeader)

			songRows, err := csv.SongRows(ctx)
			if err != nil {
				return err
			}
			listenRows, err := csv.ListeningRows(ctx)
			if err != nil {
				return err
			}
			// Refuse rows the loader would reject
			if _, err := graph.Load(songRows, listenRows); err != nil {
				return fmt.Errorf("rows do not form a valid graph: %w", err)
			}

			repo, err := datasource.OpenNeo4j(ctx, cc.cfg)
			if err != nil {
				return err
			}
			defer repo.Close(ctx)

			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}
			if reset {
				if err := repo.DeleteAll(ctx); err != nil {
					return err
				}
			}

			stats, err := repo.ImportRows(ctx, songRows, listenRows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s songs and %s listens into %s\n",
				humanize.Comma(int64(stats.Songs)), humanize.Comma(int64(stats.Listens)), cc.cfg.Neo4jURI)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete existing users and songs first")

	return cmd
}
