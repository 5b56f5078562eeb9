package graph

import (
	apperrors "harmonify/backend/pkg/errors"
)

// Vertex is a user or a song. Neighbours are held as keys into the owning
// Graph and only change through Graph.AddEdge.
type Vertex struct {
	key        string
	kind       Kind
	user       User
	song       Song
	neighbours map[string]struct{}
}

// NewVertex builds a vertex from a positional attribute list.
// Users take [username, name, age, province]; songs take
// [song_id, song_name, artist, duration_ms, genre].
func NewVertex(key string, attributes []string, kind Kind) (*Vertex, error) {
	switch kind {
	case KindUser:
		if len(attributes) != userAttributeCount {
			return nil, apperrors.NewMalformedAttributes(key, userAttributeCount, len(attributes))
		}
		return newUserVertex(key, User{
			Username: attributes[0],
			Name:     attributes[1],
			Age:      attributes[2],
			Province: attributes[3],
		}), nil
	case KindSong:
		if len(attributes) != songAttributeCount {
			return nil, apperrors.NewMalformedAttributes(key, songAttributeCount, len(attributes))
		}
		return newSongVertex(key, Song{
			ID:         attributes[0],
			Name:       attributes[1],
			Artist:     attributes[2],
			DurationMS: attributes[3],
			Genre:      attributes[4],
		}), nil
	}
	return nil, apperrors.NewInvalidKind(key, kind.String())
}

func newUserVertex(key string, u User) *Vertex {
	return &Vertex{key: key, kind: KindUser, user: u, neighbours: make(map[string]struct{})}
}

func newSongVertex(key string, s Song) *Vertex {
	return &Vertex{key: key, kind: KindSong, song: s, neighbours: make(map[string]struct{})}
}

// Key returns the vertex identifier
func (v *Vertex) Key() string { return v.key }

// Kind returns whether the vertex is a user or a song
func (v *Vertex) Kind() Kind { return v.kind }

func (v *Vertex) IsUser() bool { return v.kind == KindUser }

func (v *Vertex) IsSong() bool { return v.kind == KindSong }

// User returns the user payload; ok is false for song vertices
func (v *Vertex) User() (User, bool) {
	return v.user, v.kind == KindUser
}

// Song returns the song payload; ok is false for user vertices
func (v *Vertex) Song() (Song, bool) {
	return v.song, v.kind == KindSong
}

// Attributes returns the positional attribute list for the vertex kind
func (v *Vertex) Attributes() []string {
	if v.kind == KindUser {
		return v.user.Attributes()
	}
	return v.song.Attributes()
}

// Degree returns the number of neighbours
func (v *Vertex) Degree() int {
	return len(v.neighbours)
}

func (v *Vertex) clone() *Vertex {
	c := *v
	c.neighbours = make(map[string]struct{}, len(v.neighbours))
	for k := range v.neighbours {
		c.neighbours[k] = struct{}{}
	}
	return &c
}
