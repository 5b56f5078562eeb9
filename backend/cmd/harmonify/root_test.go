package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harmonify/backend/internal/graph"
	apperrors "harmonify/backend/pkg/errors"
)

const songsCSV = `1,Blinding Lights,The Weeknd,200040,pop
2,Bohemian Rhapsody,Queen,354320,rock
3,Levitating,Dua Lipa,203064,pop
4,Take Five,Dave Brubeck,324000,jazz
5,Seven Nation Army,The White Stripes,231733,rock
6,So What,Miles Davis,562000,jazz
`

const listensCSV = `ada,Ada,21,Ontario,1
ada,Ada,21,Ontario,3
ada,Ada,21,Ontario,6
bo,Bo,34,Quebec,2
bo,Bo,34,Quebec,4
bo,Bo,34,Quebec,5
cy,Cy,19,Alberta,3
`

// run executes the CLI against fresh CSV files and returns its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	songs := filepath.Join(dir, "songs.csv")
	listens := filepath.Join(dir, "listens.csv")
	require.NoError(t, os.WriteFile(songs, []byte(songsCSV), 0o644))
	require.NoError(t, os.WriteFile(listens, []byte(listensCSV), 0o644))

	var out bytes.Buffer
	cmd := newHarmonifyCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--source", "csv", "--songs", songs, "--listens", listens}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendCmd(t *testing.T) {
	out, err := run(t, "recommend", "newbie", "--pick", "1,2,3,4,5", "--genre", "pop", "--duration", "medium")
	require.NoError(t, err)

	// ada and bo both score 12; the smaller username wins
	assert.Contains(t, out, "Best match: ada (Ada, 21, Ontario)")
	assert.Contains(t, out, "Score:      12 (40% match)")
	assert.Contains(t, out, "Songs in common (2):")
	assert.Contains(t, out, "Recommended (1):")
	assert.Contains(t, out, "So What")
}

func TestRecommendCmd_JSON(t *testing.T) {
	out, err := run(t, "recommend", "newbie", "--pick", "1,2,3,4,5", "--genre", "rock", "--duration", "medium", "--json")
	require.NoError(t, err)

	var rec graph.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	// bo: shared 2,4,5; rock 2,5; medium 2,4,5
	assert.Equal(t, "bo", rec.Match.Username)
	assert.Equal(t, 3*3+2*2+1*3, rec.Score)
	assert.Empty(t, rec.SongsRecommended)
}

func TestRecommendCmd_InvalidRequest(t *testing.T) {
	_, err := run(t, "recommend", "newbie", "--pick", "1,2,3", "--genre", "pop", "--duration", "medium")
	var invalid *apperrors.ErrInvalidRequest
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "song_ids", invalid.Field)

	_, err = run(t, "recommend", "newbie", "--genre", "pop", "--duration", "medium")
	assert.Error(t, err, "--pick is required")
}

func TestSimilarCmd(t *testing.T) {
	out, err := run(t, "similar", "ada", "--genre", "pop", "--duration", "medium")
	require.NoError(t, err)
	assert.Contains(t, out, "cy")
	assert.NotContains(t, out, "bo")

	_, err = run(t, "similar", "nobody")
	var unknown *apperrors.ErrUnknownVertex
	assert.ErrorAs(t, err, &unknown)
}

func TestSongsCmd(t *testing.T) {
	out, err := run(t, "songs", "--popular", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Levitating")
	assert.NotContains(t, out, "Take Five")

	out, err = run(t, "songs")
	require.NoError(t, err)
	assert.Contains(t, out, "Take Five")
}

func TestStatsCmd(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Users:   3")
	assert.Contains(t, out, "Songs:   6")
	assert.Contains(t, out, "Listens: 7")
	assert.Contains(t, out, "Genres:  jazz, pop, rock")
}

func TestUnsupportedSource(t *testing.T) {
	_, err := run(t, "--source", "parquet", "stats")
	var invalid *apperrors.ErrConfigValidationFailed
	assert.ErrorAs(t, err, &invalid)
}
