// Package state holds the request a caller submits to ask for a
// recommendation. A Request replaces the form fields a UI would otherwise
// share with the engine; it is passed by value and never mutated.
package state

import (
	"strings"

	"harmonify/backend/internal/graph"
	"harmonify/backend/internal/validation"
)

// FavouriteSongCount is how many distinct songs a query user picks
const FavouriteSongCount = 5

// Request describes a new user and the tastes used to match them
type Request struct {
	Username string   `json:"username" binding:"required" validate:"required,alphanum"`
	Name     string   `json:"name,omitempty"`
	Age      string   `json:"age,omitempty" validate:"omitempty,numeric"`
	Province string   `json:"province,omitempty"`
	SongIDs  []string `json:"song_ids" binding:"required" validate:"required,len=5,unique,dive,required"`
	Genre    string   `json:"genre" binding:"required" validate:"required"`
	Duration string   `json:"duration" binding:"required" validate:"required,oneof=short medium long"`
}

// Normalized returns a copy with surrounding space trimmed and genre and
// duration lower-cased
func (r Request) Normalized() Request {
	n := r
	n.Username = strings.TrimSpace(r.Username)
	n.Name = strings.TrimSpace(r.Name)
	n.Age = strings.TrimSpace(r.Age)
	n.Province = strings.TrimSpace(r.Province)
	n.Genre = strings.ToLower(strings.TrimSpace(r.Genre))
	n.Duration = strings.ToLower(strings.TrimSpace(r.Duration))
	n.SongIDs = make([]string, len(r.SongIDs))
	for i, id := range r.SongIDs {
		n.SongIDs[i] = strings.TrimSpace(id)
	}
	return n
}

// Validate checks the request's shape. Song ids are free-form strings here;
// catalogue checks (song ids exist, genre is known) need a graph and happen
// in the recommender.
func (r Request) Validate() error {
	return validation.Struct(r)
}

// User returns the vertex payload for the query user. Name defaults to the username.
func (r Request) User() graph.User {
	name := r.Name
	if name == "" {
		name = r.Username
	}
	return graph.User{
		Username: r.Username,
		Name:     name,
		Age:      r.Age,
		Province: r.Province,
	}
}

// Preferences returns the genre and duration the match is weighted by
func (r Request) Preferences() graph.Preferences {
	return graph.Preferences{Genre: r.Genre, Duration: r.Duration}
}
