// Package datasource picks the row source a graph is loaded from based on
// configuration.
package datasource

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"harmonify/backend/internal/catalog"
	"harmonify/backend/internal/graph"
	"harmonify/backend/internal/store"
	"harmonify/backend/pkg/config"
	"harmonify/backend/pkg/logger"
)

// Source is a row source that may hold a connection
type Source interface {
	graph.RowSource
	Close(ctx context.Context) error
}

type csvSource struct {
	*catalog.CSVSource
}

func (csvSource) Close(context.Context) error { return nil }

// Open returns the configured row source. A Neo4j source has its connection
// verified before it is returned.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	log := logger.Named("datasource")

	switch cfg.DataSource {
	case config.DataSourceNeo4j:
		repo, err := OpenNeo4j(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Using Neo4j row source", zap.String("uri", cfg.Neo4jURI))
		return repo, nil
	case config.DataSourceCSV:
		log.Info("Using CSV row source",
			zap.String("songs", cfg.SongsCSV),
			zap.String("listens", cfg.ListensCSV),
		)
		return csvSource{catalog.NewCSVSource(cfg.SongsCSV, cfg.ListensCSV, cfg.CSVHasHeader)}, nil
	}
	return nil, fmt.Errorf("unsupported data source %q", cfg.DataSource)
}

// OpenNeo4j connects to Neo4j and returns a repository over it
func OpenNeo4j(ctx context.Context, cfg *config.Config) (*store.Repository, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	return store.NewRepository(driver), nil
}

// LoadOptions translates configuration into graph load options
func LoadOptions(cfg *config.Config) []graph.LoadOption {
	var opts []graph.LoadOption
	if cfg.FullCatalogue {
		opts = append(opts, graph.WithFullCatalogue())
	}
	return opts
}
