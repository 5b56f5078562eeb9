package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "harmonify/backend/pkg/errors"
)

// Data sources the graph can be loaded from
const (
	DataSourceCSV   = "csv"
	DataSourceNeo4j = "neo4j"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Data
	DataSource    string // csv or neo4j
	SongsCSV      string // song catalogue rows
	ListensCSV    string // user-listening rows
	CSVHasHeader  bool
	FullCatalogue bool // add every catalogue song as a vertex, not only listened ones

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Recommendation
	RankLimit int // default size of similar-user listings
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DataSource:    strings.ToLower(getEnv("DATA_SOURCE", DataSourceCSV)),
		SongsCSV:      getEnv("SONGS_CSV", "songs_by_popularity.csv"),
		ListensCSV:    getEnv("LISTENS_CSV", "all_user_data_200_songs.csv"),
		CSVHasHeader:  getEnvBool("CSV_HAS_HEADER", false),
		FullCatalogue: getEnvBool("FULL_CATALOGUE", true),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		RankLimit:     getEnvInt("RANK_LIMIT", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceCSV:
		if c.SongsCSV == "" {
			return apperrors.NewConfigMissingRequired("SONGS_CSV")
		}
		if c.ListensCSV == "" {
			return apperrors.NewConfigMissingRequired("LISTENS_CSV")
		}
	case DataSourceNeo4j:
		if c.Neo4jURI == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_URI")
		}
		if c.Neo4jUser == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_USER")
		}
	default:
		return apperrors.NewConfigValidationFailed("DATA_SOURCE", fmt.Sprintf("unsupported source %q", c.DataSource))
	}
	if c.RankLimit < 1 {
		return apperrors.NewConfigValidationFailed("RANK_LIMIT", "must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}
