package store

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harmonify/backend/internal/graph"
)

func TestGetStringFromRecord(t *testing.T) {
	record := &neo4j.Record{
		Keys:   []string{"id", "duration_ms", "ratio", "missing"},
		Values: []any{"7", int64(200040), 0.5, nil},
	}

	assert.Equal(t, "7", getStringFromRecord(record, "id"))
	assert.Equal(t, "200040", getStringFromRecord(record, "duration_ms"))
	assert.Equal(t, "0.5", getStringFromRecord(record, "ratio"))
	assert.Equal(t, "", getStringFromRecord(record, "missing"))
	assert.Equal(t, "", getStringFromRecord(record, "absent"))
}

func TestRowFromRecord(t *testing.T) {
	song := &neo4j.Record{
		Keys:   []string{"id", "name", "artist", "duration_ms", "genre"},
		Values: []any{"1", "Blinding Lights", "The Weeknd", "200040", "pop"},
	}
	assert.Equal(t, []string{"1", "Blinding Lights", "The Weeknd", "200040", "pop"}, songRowFromRecord(song))

	listen := &neo4j.Record{
		Keys:   []string{"username", "name", "age", "province", "song_id"},
		Values: []any{"ada", "Ada", "21", "Ontario", "1"},
	}
	assert.Equal(t, []string{"ada", "Ada", "21", "Ontario", "1"}, listenRowFromRecord(listen))
}

func TestChunkRows(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}

	chunks := chunkRows(rows, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, chunks[0])
	assert.Equal(t, [][]string{{"e"}}, chunks[2])

	assert.Len(t, chunkRows(rows, 5), 1)
	assert.Empty(t, chunkRows(nil, 5))
}

func TestParams(t *testing.T) {
	songs := songParams([][]string{{"1", "One", "Artist", "90000", "pop"}})
	require.Len(t, songs, 1)
	assert.Equal(t, "90000", songs[0]["duration_ms"])

	listens := listenParams([][]string{{"ada", "Ada", "21", "Ontario", "1"}})
	require.Len(t, listens, 1)
	assert.Equal(t, "1", listens[0]["song_id"])
	assert.Equal(t, "Ontario", listens[0]["province"])
}

// TestRepository_RoundTrip requires a running Neo4j instance
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables
func TestRepository_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j unavailable: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.DeleteAll(ctx))
	defer func() { _ = repo.DeleteAll(ctx) }()

	songRows := [][]string{
		{"1", "One", "Artist", "90000", "pop"},
		{"2", "Two", "Artist", "300000", "rock"},
	}
	listenRows := [][]string{
		{"ada", "Ada", "21", "Ontario", "1"},
		{"ada", "Ada", "21", "Ontario", "2"},
		{"bo", "Bo", "34", "Quebec", "1"},
	}

	stats, err := repo.ImportRows(ctx, songRows, listenRows)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Songs: 2, Listens: 3}, stats)

	g, err := graph.LoadFrom(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, graph.Stats{Users: 2, Songs: 2, Edges: 3}, g.Stats())
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := getenv("NEO4J_URI", "bolt://localhost:7687")
	user := getenv("NEO4J_USER", "neo4j")
	password := getenv("NEO4J_PASSWORD", "password")

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
