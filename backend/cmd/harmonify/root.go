package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"harmonify/backend/internal/datasource"
	"harmonify/backend/internal/recommender"
	"harmonify/backend/pkg/config"
	"harmonify/backend/pkg/logger"
)

// cliContext carries configuration from the root command to its subcommands
type cliContext struct {
	cfg *config.Config

	source    string
	songs     string
	listens   string
	hasHeader bool
	verbose   bool
}

func newHarmonifyCmd() *cobra.Command {
	cc := &cliContext{}

	cmd := &cobra.Command{
		Use:   "harmonify",
		Short: "Harmonify finds the listener whose songs best match yours",
		Long: "Harmonify loads a song catalogue and user-listening rows into a graph\n" +
			"and recommends songs from the most similar listener.\n\n" +
			"Configuration comes from the environment (or .env); flags override it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cc.source, "source", "", "Row source: csv or neo4j (default from DATA_SOURCE)")
	cmd.PersistentFlags().StringVar(&cc.songs, "songs", "", "Song catalogue CSV (default from SONGS_CSV)")
	cmd.PersistentFlags().StringVar(&cc.listens, "listens", "", "User-listening CSV (default from LISTENS_CSV)")
	cmd.PersistentFlags().BoolVar(&cc.hasHeader, "header", false, "Skip the first row of each CSV")
	cmd.PersistentFlags().BoolVarP(&cc.verbose, "verbose", "v", false, "Log at debug level to stderr")

	cmd.AddCommand(newRecommendCmd(cc))
	cmd.AddCommand(newSimilarCmd(cc))
	cmd.AddCommand(newSongsCmd(cc))
	cmd.AddCommand(newStatsCmd(cc))
	cmd.AddCommand(newSeedCmd(cc))

	return cmd
}

// init loads configuration and applies any flags the user set
func (cc *cliContext) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.DataSource = strings.ToLower(cc.source)
	}
	if flags.Changed("songs") {
		cfg.SongsCSV = cc.songs
	}
	if flags.Changed("listens") {
		cfg.ListensCSV = cc.listens
	}
	if flags.Changed("header") {
		cfg.CSVHasHeader = cc.hasHeader
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cc.cfg = cfg

	env := "test" // warnings only
	if cc.verbose {
		env = "development"
	}
	return logger.Init(env)
}

// service opens the configured row source and loads a graph from it.
// The returned func closes the source.
func (cc *cliContext) service(ctx context.Context) (*recommender.Service, func(), error) {
	src, err := datasource.Open(ctx, cc.cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = src.Close(context.Background()) }

	svc := recommender.New(src, cc.cfg.RankLimit, datasource.LoadOptions(cc.cfg)...)
	if _, err := svc.Reload(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}
