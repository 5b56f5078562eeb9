package graph

import (
	"slices"
	"strings"

	apperrors "harmonify/backend/pkg/errors"
)

// ============================================================================
// Similarity and Ranking Operations
// ============================================================================

// Similarity scores userB from userA's point of view.
//
// Every song vertex adjacent to both users adds 3; it adds 2 more when its
// genre equals prefs.Genre and 1 more when its duration bucket equals
// prefs.Duration (both case-insensitive). The preferences are the asker's:
// scoring b for a with a's tastes generally differs from scoring a for b
// with b's.
func (g *Graph) Similarity(userA, userB string, prefs Preferences) (Similarity, error) {
	a, err := g.vertexOfKind(userA, KindUser)
	if err != nil {
		return Similarity{}, err
	}
	b, err := g.vertexOfKind(userB, KindUser)
	if err != nil {
		return Similarity{}, err
	}
	if userA == userB {
		return Similarity{}, apperrors.NewSelfComparison(userA)
	}
	return g.score(a, b, prefs), nil
}

// score matches songs by vertex identity: a song counts only if the same
// key is in both neighbour sets.
func (g *Graph) score(a, b *Vertex, prefs Preferences) Similarity {
	s := Similarity{User: a.key, Other: b.key}

	small, large := a.neighbours, b.neighbours
	if len(small) > len(large) {
		small, large = large, small
	}

	for key := range small {
		if _, shared := large[key]; !shared {
			continue
		}
		song, ok := g.vertices[key].Song()
		if !ok {
			continue
		}
		s.CommonSongs++
		if strings.EqualFold(song.Genre, strings.TrimSpace(prefs.Genre)) {
			s.CommonGenre++
		}
		if bucket, ok := song.Bucket(); ok && bucket.Matches(prefs.Duration) {
			s.CommonDuration++
		}
	}

	s.Score = songWeight*s.CommonSongs + genreWeight*s.CommonGenre + durationWeight*s.CommonDuration
	return s
}

// RankUsers scores every other user against username and returns those with
// a positive score, best first. Equal scores are ordered by username so the
// ranking is stable across runs. limit <= 0 returns every eligible user.
func (g *Graph) RankUsers(username string, prefs Preferences, limit int) ([]Similarity, error) {
	u, err := g.vertexOfKind(username, KindUser)
	if err != nil {
		return nil, err
	}

	var ranked []Similarity
	for key, other := range g.vertices {
		if other.kind != KindUser || key == username {
			continue
		}
		if s := g.score(u, other, prefs); s.Score > 0 {
			ranked = append(ranked, s)
		}
	}

	slices.SortFunc(ranked, func(a, b Similarity) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Other, b.Other)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
