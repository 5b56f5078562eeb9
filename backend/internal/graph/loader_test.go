package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "harmonify/backend/pkg/errors"
)

var (
	testSongRows = [][]string{
		{"1", "Blinding Lights", "The Weeknd", "200040", "pop"},
		{"2", "Bohemian Rhapsody", "Queen", "354320", "rock"},
		{"3", "Short One", "Nobody", "95000", "pop"},
		{"4", "Unplayed", "Nobody", "500000", "ambient", "extra column"},
	}
	testListenRows = [][]string{
		{"ada", "Ada", "21", "Ontario", "1"},
		{"ada", "Ada", "21", "Ontario", "2"},
		{"bo", "Bo", "34", "Quebec", "1"},
		{"bo", "Bo", "34", "Quebec", "3"},
		{"cy", "Cy", "19", "Alberta", "2"},
	}
)

type staticSource struct {
	songs, listens [][]string
	err            error
}

func (s staticSource) SongRows(ctx context.Context) ([][]string, error) {
	return s.songs, s.err
}

func (s staticSource) ListeningRows(ctx context.Context) ([][]string, error) {
	return s.listens, nil
}

func TestLoad(t *testing.T) {
	g, err := Load(testSongRows, testListenRows)
	require.NoError(t, err)

	assert.Equal(t, []string{"ada", "bo", "cy"}, g.AllVertices(KindUser))
	// only listened songs become vertices by default
	assert.Equal(t, []string{"1", "2", "3"}, g.AllVertices(KindSong))
	assert.True(t, g.Adjacent("ada", "2"))
	assert.True(t, g.Adjacent("2", "cy"))

	u, err := g.User("bo")
	require.NoError(t, err)
	assert.Equal(t, User{Username: "bo", Name: "Bo", Age: "34", Province: "Quebec"}, u)

	s, err := g.Song("2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "Bohemian Rhapsody", "Queen", "354320", "rock"}, s.Attributes())
}

func TestLoad_FullCatalogue(t *testing.T) {
	g, err := Load(testSongRows, testListenRows, WithFullCatalogue())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, g.AllVertices(KindSong))

	deg, err := g.Degree("4")
	require.NoError(t, err)
	assert.Equal(t, 0, deg)
}

func TestLoad_UnresolvedSongReference(t *testing.T) {
	listens := append([][]string{}, testListenRows...)
	listens = append(listens, []string{"dee", "Dee", "40", "Manitoba", "99"})

	g, err := Load(testSongRows, listens)
	assert.Nil(t, g)
	var unresolved *apperrors.ErrUnresolvedSongReference
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "99", unresolved.SongID)
	assert.Equal(t, 6, unresolved.Row)
}

func TestLoad_MalformedRows(t *testing.T) {
	_, err := Load([][]string{{"1", "only two"}}, nil)
	var malformed *apperrors.ErrMalformedRow
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, SourceSongs, malformed.Source)

	_, err = Load(testSongRows, [][]string{{"ada", "Ada"}})
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, SourceListens, malformed.Source)
	assert.Equal(t, 1, malformed.Row)
}

func TestLoad_KeyCollision(t *testing.T) {
	// a username equal to a song id cannot be told apart from the song
	_, err := Load(testSongRows, [][]string{
		{"ada", "Ada", "21", "Ontario", "1"},
		{"1", "One", "30", "Nunavut", "2"},
	})
	var kind *apperrors.ErrInvalidKind
	assert.True(t, errors.As(err, &kind))
}

func TestLoad_RoundTrip(t *testing.T) {
	g1, err := Load(testSongRows, testListenRows)
	require.NoError(t, err)
	g2, err := Load(testSongRows, testListenRows)
	require.NoError(t, err)

	assert.Equal(t, g1.AllVertices(KindAny), g2.AllVertices(KindAny))

	prefs := Preferences{Genre: "pop", Duration: "medium"}
	for _, user := range g1.AllVertices(KindUser) {
		r1, err1 := g1.Recommend(user, prefs)
		r2, err2 := g2.Recommend(user, prefs)
		assert.Equal(t, err1 == nil, err2 == nil)
		assert.Equal(t, r1, r2, "user %s", user)
	}
}

func TestLoadFrom(t *testing.T) {
	g, err := LoadFrom(context.Background(), staticSource{songs: testSongRows, listens: testListenRows})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Stats().Users)

	_, err = LoadFrom(context.Background(), staticSource{err: errors.New("disk on fire")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
