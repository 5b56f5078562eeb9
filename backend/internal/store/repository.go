// Package store keeps listening data in Neo4j as
// (:User)-[:LISTENS_TO]->(:Song) and serves it back as loader rows.
package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "harmonify/backend/pkg/errors"
	"harmonify/backend/pkg/logger"
)

// importBatchSize bounds the rows sent in one UNWIND statement
const importBatchSize = 500

// Repository handles all Neo4j database operations.
// It implements graph.RowSource.
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new store repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("store"),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// EnsureSchema creates the uniqueness constraints the import relies on
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT song_id_unique IF NOT EXISTS FOR (s:Song) REQUIRE s.id IS UNIQUE",
		"CREATE CONSTRAINT user_username_unique IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
	}

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return apperrors.NewStoreQueryFailed("ensure schema", err)
		}
	}
	return nil
}

// SongRows returns every song as [song_id, song_name, artist, duration_ms, genre]
func (r *Repository) SongRows(ctx context.Context) ([][]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (s:Song)
		RETURN s.id as id, s.name as name, s.artist as artist,
		       s.duration_ms as duration_ms, s.genre as genre
		ORDER BY s.id
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("song rows", err)
	}

	var rows [][]string
	for result.Next(ctx) {
		rows = append(rows, songRowFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("song rows", err)
	}
	return rows, nil
}

// ListeningRows returns one [username, name, age, province, song_id] row per LISTENS_TO edge
func (r *Repository) ListeningRows(ctx context.Context) ([][]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)-[:LISTENS_TO]->(s:Song)
		RETURN u.username as username, u.name as name, u.age as age,
		       u.province as province, s.id as song_id
		ORDER BY u.username, s.id
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("listening rows", err)
	}

	var rows [][]string
	for result.Next(ctx) {
		rows = append(rows, listenRowFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreQueryFailed("listening rows", err)
	}
	return rows, nil
}

// ImportStats reports what ImportRows wrote
type ImportStats struct {
	Songs   int
	Listens int
}

// ImportRows merges catalogue and listening rows into the database.
// Rows must already have passed graph.Load so that every song reference resolves.
func (r *Repository) ImportRows(ctx context.Context, songRows, listenRows [][]string) (ImportStats, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	songQuery := `
		UNWIND $rows as row
		MERGE (s:Song {id: row.id})
		SET s.name = row.name,
		    s.artist = row.artist,
		    s.duration_ms = row.duration_ms,
		    s.genre = row.genre
	`
	listenQuery := `
		UNWIND $rows as row
		MERGE (u:User {username: row.username})
		ON CREATE SET u.name = row.name, u.age = row.age, u.province = row.province
		WITH u, row
		MATCH (s:Song {id: row.song_id})
		MERGE (u)-[:LISTENS_TO]->(s)
	`

	var stats ImportStats
	for _, batch := range chunkRows(songRows, importBatchSize) {
		params := map[string]interface{}{"rows": songParams(batch)}
		if _, err := session.Run(ctx, songQuery, params); err != nil {
			return stats, apperrors.NewStoreQueryFailed("import songs", err)
		}
		stats.Songs += len(batch)
	}
	for _, batch := range chunkRows(listenRows, importBatchSize) {
		params := map[string]interface{}{"rows": listenParams(batch)}
		if _, err := session.Run(ctx, listenQuery, params); err != nil {
			return stats, apperrors.NewStoreQueryFailed("import listens", err)
		}
		stats.Listens += len(batch)
	}

	r.logger.Info("Rows imported",
		zap.Int("songs", stats.Songs),
		zap.Int("listens", stats.Listens),
	)
	return stats, nil
}

// DeleteAll removes every User and Song node
func (r *Repository) DeleteAll(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (n) WHERE n:User OR n:Song DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("failed to delete graph: %w", err)
	}
	return nil
}
