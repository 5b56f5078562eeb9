package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "harmonify/backend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("SONGS_CSV", "")
	t.Setenv("RANK_LIMIT", "")
	t.Setenv("FULL_CATALOGUE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DataSourceCSV, cfg.DataSource)
	assert.Equal(t, "songs_by_popularity.csv", cfg.SongsCSV)
	assert.Equal(t, 10, cfg.RankLimit)
	assert.True(t, cfg.FullCatalogue)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "NEO4J")
	t.Setenv("RANK_LIMIT", "3")
	t.Setenv("CSV_HAS_HEADER", "yes")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DataSourceNeo4j, cfg.DataSource)
	assert.Equal(t, 3, cfg.RankLimit)
	assert.True(t, cfg.CSVHasHeader)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid csv", mutate: func(c *Config) {}},
		{name: "missing songs", mutate: func(c *Config) { c.SongsCSV = "" }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.DataSource = "sqlite" }, wantErr: true},
		{name: "neo4j without uri", mutate: func(c *Config) {
			c.DataSource = DataSourceNeo4j
			c.Neo4jURI = ""
		}, wantErr: true},
		{name: "zero rank limit", mutate: func(c *Config) { c.RankLimit = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DataSource: DataSourceCSV,
				SongsCSV:   "songs.csv",
				ListensCSV: "listens.csv",
				Neo4jURI:   "bolt://localhost:7687",
				Neo4jUser:  "neo4j",
				RankLimit:  10,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}
