package graph

import (
	"math"

	apperrors "harmonify/backend/pkg/errors"
)

// ============================================================================
// Recommendation Operations
// ============================================================================

// Recommend picks the user most similar to username and splits the match's
// songs into those username already listens to and those it does not.
//
// Ties on the top score go to the lexicographically smallest username.
// Songs are partitioned by id, so two catalogue entries that share a title
// stay distinct. Fails with ErrNoEligibleMatch when no other user scores
// above zero.
func (g *Graph) Recommend(username string, prefs Preferences) (*Recommendation, error) {
	ranked, err := g.RankUsers(username, prefs, 1)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, apperrors.NewNoEligibleMatch(username)
	}

	best := ranked[0]
	user := g.vertices[username]
	match := g.vertices[best.Other]

	common := make(map[string]struct{})
	recommended := make(map[string]struct{})
	for key := range match.neighbours {
		if _, ok := user.neighbours[key]; ok {
			common[key] = struct{}{}
		} else {
			recommended[key] = struct{}{}
		}
	}

	return &Recommendation{
		Match:            match.user,
		SongsInCommon:    g.songsIn(common),
		SongsRecommended: g.songsIn(recommended),
		Score:            best.Score,
		MatchPercent:     matchPercent(best.Score, g.songCount(user)),
	}, nil
}

// matchPercent scales a score against the best one achievable by a user
// with songCount songs (every song shared, genre and duration matching).
func matchPercent(score, songCount int) int {
	if songCount == 0 {
		return 0
	}
	pct := int(math.Round(float64(score) * 100 / float64(songCount*maxSongScore)))
	if pct > 100 {
		return 100
	}
	return pct
}

func (g *Graph) songCount(v *Vertex) int {
	n := 0
	for key := range v.neighbours {
		if g.vertices[key].kind == KindSong {
			n++
		}
	}
	return n
}
