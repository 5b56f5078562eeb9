package store

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

// getStringFromRecord returns a property as text; numbers stored by other
// tools are formatted rather than dropped.
func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprint(val)
}

func songRowFromRecord(record *neo4j.Record) []string {
	return []string{
		getStringFromRecord(record, "id"),
		getStringFromRecord(record, "name"),
		getStringFromRecord(record, "artist"),
		getStringFromRecord(record, "duration_ms"),
		getStringFromRecord(record, "genre"),
	}
}

func listenRowFromRecord(record *neo4j.Record) []string {
	return []string{
		getStringFromRecord(record, "username"),
		getStringFromRecord(record, "name"),
		getStringFromRecord(record, "age"),
		getStringFromRecord(record, "province"),
		getStringFromRecord(record, "song_id"),
	}
}

func chunkRows(rows [][]string, size int) [][][]string {
	var chunks [][][]string
	for size < len(rows) {
		rows, chunks = rows[size:], append(chunks, rows[:size])
	}
	if len(rows) > 0 {
		chunks = append(chunks, rows)
	}
	return chunks
}

// songParams expects rows with at least five columns
func songParams(rows [][]string) []map[string]interface{} {
	params := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		params = append(params, map[string]interface{}{
			"id":          row[0],
			"name":        row[1],
			"artist":      row[2],
			"duration_ms": row[3],
			"genre":       row[4],
		})
	}
	return params
}

// listenParams expects rows with at least five columns
func listenParams(rows [][]string) []map[string]interface{} {
	params := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		params = append(params, map[string]interface{}{
			"username": row[0],
			"name":     row[1],
			"age":      row[2],
			"province": row[3],
			"song_id":  row[4],
		})
	}
	return params
}
