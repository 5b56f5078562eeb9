// Package graph holds the bipartite user–song graph and the similarity
// scoring and recommendation built on its 1-hop neighbourhoods.
//
// The Graph owns every Vertex. Adjacency is stored as key-sets, so vertices
// never hold references to each other and the symmetric-adjacency invariant
// is maintained in one place, AddEdge.
//
// A Graph has no internal locking. Populate it from a single goroutine; once
// loaded it may be shared by any number of readers. Callers that need to
// mutate a shared graph (for example to add a query user) should work on a
// Clone.
package graph

import (
	"slices"
	"strings"

	apperrors "harmonify/backend/pkg/errors"
)

// Graph is an undirected user–song graph keyed by vertex identifier
type Graph struct {
	vertices map[string]*Vertex
}

// New creates an empty graph
func New() *Graph {
	return &Graph{vertices: make(map[string]*Vertex)}
}

// ============================================================================
// Mutation
// ============================================================================

// AddVertex inserts a vertex built from a positional attribute list.
// Re-adding an existing key is a no-op, even if the attributes differ.
func (g *Graph) AddVertex(key string, attributes []string, kind Kind) error {
	if _, ok := g.vertices[key]; ok {
		return nil
	}
	v, err := NewVertex(key, attributes, kind)
	if err != nil {
		return err
	}
	g.vertices[key] = v
	return nil
}

// AddUser inserts a user vertex keyed by username if absent
func (g *Graph) AddUser(u User) {
	if _, ok := g.vertices[u.Username]; !ok {
		g.vertices[u.Username] = newUserVertex(u.Username, u)
	}
}

// AddSong inserts a song vertex keyed by song id if absent
func (g *Graph) AddSong(s Song) {
	if _, ok := g.vertices[s.ID]; !ok {
		g.vertices[s.ID] = newSongVertex(s.ID, s)
	}
}

// AddEdge connects two existing, distinct vertices. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(key1, key2 string) error {
	v1, ok := g.vertices[key1]
	if !ok {
		return apperrors.NewUnknownVertex(key1)
	}
	v2, ok := g.vertices[key2]
	if !ok {
		return apperrors.NewUnknownVertex(key2)
	}
	if key1 == key2 {
		return apperrors.NewSelfEdge(key1)
	}

	v1.neighbours[key2] = struct{}{}
	v2.neighbours[key1] = struct{}{}
	return nil
}

// ============================================================================
// Query
// ============================================================================

// Adjacent reports whether key1 and key2 share an edge. Missing keys are simply not adjacent.
func (g *Graph) Adjacent(key1, key2 string) bool {
	v1, ok := g.vertices[key1]
	if !ok {
		return false
	}
	if _, ok := g.vertices[key2]; !ok {
		return false
	}
	_, ok = v1.neighbours[key2]
	return ok
}

// Neighbours returns the sorted keys adjacent to key
func (g *Graph) Neighbours(key string) ([]string, error) {
	v, ok := g.vertices[key]
	if !ok {
		return nil, apperrors.NewUnknownVertex(key)
	}
	return sortedKeys(v.neighbours), nil
}

// AllVertices returns the sorted keys of every vertex of the given kind; KindAny returns all
func (g *Graph) AllVertices(kind Kind) []string {
	keys := make([]string, 0, len(g.vertices))
	for key, v := range g.vertices {
		if kind == KindAny || v.kind == kind {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Vertex looks up a vertex by key
func (g *Graph) Vertex(key string) (*Vertex, bool) {
	v, ok := g.vertices[key]
	return v, ok
}

// User looks up a user by username
func (g *Graph) User(username string) (User, error) {
	v, err := g.vertexOfKind(username, KindUser)
	if err != nil {
		return User{}, err
	}
	return v.user, nil
}

// Song looks up a song by id
func (g *Graph) Song(id string) (Song, error) {
	v, err := g.vertexOfKind(id, KindSong)
	if err != nil {
		return Song{}, err
	}
	return v.song, nil
}

// Degree returns the neighbour count of key
func (g *Graph) Degree(key string) (int, error) {
	v, ok := g.vertices[key]
	if !ok {
		return 0, apperrors.NewUnknownVertex(key)
	}
	return v.Degree(), nil
}

// Len returns the number of vertices
func (g *Graph) Len() int {
	return len(g.vertices)
}

// Stats counts users, songs and edges
func (g *Graph) Stats() Stats {
	var s Stats
	degrees := 0
	for _, v := range g.vertices {
		switch v.kind {
		case KindUser:
			s.Users++
		case KindSong:
			s.Songs++
		}
		degrees += v.Degree()
	}
	s.Edges = degrees / 2
	return s
}

// SongsOf returns the songs a user listens to, ordered by song id
func (g *Graph) SongsOf(username string) ([]Song, error) {
	v, err := g.vertexOfKind(username, KindUser)
	if err != nil {
		return nil, err
	}
	return g.songsIn(v.neighbours), nil
}

// Songs returns every song vertex ordered by song id
func (g *Graph) Songs() []Song {
	songs := make([]Song, 0, len(g.vertices))
	for _, v := range g.vertices {
		if s, ok := v.Song(); ok {
			songs = append(songs, s)
		}
	}
	sortSongs(songs)
	return songs
}

// PopularSongs returns songs ordered by listener count (desc), then id.
// limit <= 0 returns all of them.
func (g *Graph) PopularSongs(limit int) []SongDegree {
	ranked := make([]SongDegree, 0)
	for _, v := range g.vertices {
		if s, ok := v.Song(); ok {
			ranked = append(ranked, SongDegree{Song: s, Listeners: v.Degree()})
		}
	}
	slices.SortFunc(ranked, func(a, b SongDegree) int {
		if a.Listeners != b.Listeners {
			return b.Listeners - a.Listeners
		}
		return compareIDs(a.Song.ID, b.Song.ID)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Genres returns the distinct lower-cased song genres, sorted
func (g *Graph) Genres() []string {
	seen := make(map[string]struct{})
	for _, v := range g.vertices {
		if s, ok := v.Song(); ok && s.Genre != "" {
			seen[strings.ToLower(s.Genre)] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Clone returns a deep copy that can be mutated without affecting g
func (g *Graph) Clone() *Graph {
	c := &Graph{vertices: make(map[string]*Vertex, len(g.vertices))}
	for key, v := range g.vertices {
		c.vertices[key] = v.clone()
	}
	return c
}

func (g *Graph) vertexOfKind(key string, kind Kind) (*Vertex, error) {
	v, ok := g.vertices[key]
	if !ok {
		return nil, apperrors.NewUnknownVertex(key)
	}
	if v.kind != kind {
		return nil, apperrors.NewInvalidKind(key, v.kind.String())
	}
	return v, nil
}

// songsIn resolves a key-set to its song vertices, skipping non-songs
func (g *Graph) songsIn(keys map[string]struct{}) []Song {
	songs := make([]Song, 0, len(keys))
	for key := range keys {
		if s, ok := g.vertices[key].Song(); ok {
			songs = append(songs, s)
		}
	}
	sortSongs(songs)
	return songs
}
