package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harmonify/backend/internal/graph"
)

const songsCSV = `1,Blinding Lights,The Weeknd,200040,pop
2,"Bohemian Rhapsody",Queen,354320,rock
3,Short One, Nobody ,95000,pop
`

const listensCSV = `ada,Ada,21,Ontario,1
ada,Ada,21,Ontario,3

bo,Bo,34,Quebec,1
cy,Cy,19,Alberta,2
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(context.Background(), strings.NewReader(songsCSV), false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2", "Bohemian Rhapsody", "Queen", "354320", "rock"}, rows[1])
	assert.Equal(t, "Nobody", rows[2][2])
}

func TestReadRows_Header(t *testing.T) {
	body := "song_id,song_name,artist,duration_ms,genre\n" + songsCSV
	rows, err := ReadRows(context.Background(), strings.NewReader(body), true)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0][0])
}

func TestReadRows_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadRows(ctx, strings.NewReader(songsCSV), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVSource_LoadsGraph(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSource(
		writeFile(t, dir, "songs.csv", songsCSV),
		writeFile(t, dir, "listens.csv", listensCSV),
		false,
	)

	g, err := graph.LoadFrom(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada", "bo", "cy"}, g.AllVertices(graph.KindUser))

	rec, err := g.Recommend("ada", graph.Preferences{Genre: "pop", Duration: "medium"})
	require.NoError(t, err)
	assert.Equal(t, "bo", rec.Match.Username)
	assert.Equal(t, 3+2+1, rec.Score)
	assert.Empty(t, rec.SongsRecommended)
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), "also-nope.csv", false)
	_, err := src.SongRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}
