package graph

import (
	"strconv"
	"strings"

	apperrors "harmonify/backend/pkg/errors"
)

// ============================================================================
// Vertex Kinds and Attributes
// ============================================================================

// Kind tags a vertex as a user or a song. The zero value matches any kind
// when used as a filter and is never a valid vertex kind.
type Kind int

const (
	KindAny Kind = iota
	KindUser
	KindSong
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindAny:
		return ""
	case KindUser:
		return "user"
	case KindSong:
		return "song"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind maps "user", "song" or "" (any) to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return KindAny, nil
	case "user":
		return KindUser, nil
	case "song":
		return KindSong, nil
	}
	return KindAny, apperrors.NewInvalidKind("", s)
}

// Attribute arity per kind
const (
	userAttributeCount = 4 // username, name, age, province
	songAttributeCount = 5 // song_id, song_name, artist, duration_ms, genre
)

// User represents a listener in the graph
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Age      string `json:"age"`
	Province string `json:"province"`
}

// Attributes returns the user as [username, name, age, province]
func (u User) Attributes() []string {
	return []string{u.Username, u.Name, u.Age, u.Province}
}

// Song represents a catalogue entry in the graph
type Song struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	DurationMS string `json:"duration_ms"`
	Genre      string `json:"genre"`
}

// Attributes returns the song as [song_id, song_name, artist, duration_ms, genre]
func (s Song) Attributes() []string {
	return []string{s.ID, s.Name, s.Artist, s.DurationMS, s.Genre}
}

// Bucket classifies the song's duration. ok is false when DurationMS is not an integer.
func (s Song) Bucket() (Bucket, bool) {
	ms, err := strconv.Atoi(strings.TrimSpace(s.DurationMS))
	if err != nil {
		return "", false
	}
	return ClassifyDuration(ms), true
}

// ============================================================================
// Duration Buckets
// ============================================================================

// Bucket is a coarse song length label
type Bucket string

const (
	BucketShort  Bucket = "short"
	BucketMedium Bucket = "medium"
	BucketLong   Bucket = "long"
)

// Bucket thresholds in milliseconds; both bounds belong to BucketMedium.
const (
	shortUpperMS  = 120000
	mediumUpperMS = 480000
)

// ClassifyDuration buckets a duration given in milliseconds
func ClassifyDuration(ms int) Bucket {
	switch {
	case ms < shortUpperMS:
		return BucketShort
	case ms <= mediumUpperMS:
		return BucketMedium
	default:
		return BucketLong
	}
}

// ParseBucket accepts short, medium or long in any case
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case BucketShort, BucketMedium, BucketLong:
		return b, nil
	}
	return "", apperrors.NewInvalidRequest("duration", "must be one of short, medium, long")
}

// Matches reports whether the bucket equals a caller-supplied label, ignoring case
func (b Bucket) Matches(label string) bool {
	return strings.EqualFold(string(b), strings.TrimSpace(label))
}

// ============================================================================
// Query Types
// ============================================================================

// Preferences are the asking user's tastes used to weight shared songs
type Preferences struct {
	Genre    string `json:"genre"`
	Duration string `json:"duration"`
}

// Score weights
const (
	songWeight     = 3
	genreWeight    = 2
	durationWeight = 1

	// maxSongScore is what one shared song can contribute at most
	maxSongScore = songWeight + genreWeight + durationWeight
)

// Similarity is the breakdown of a score between two users
type Similarity struct {
	User           string `json:"user"`
	Other          string `json:"other"`
	CommonSongs    int    `json:"common_songs"`
	CommonGenre    int    `json:"common_genre"`
	CommonDuration int    `json:"common_duration"`
	Score          int    `json:"score"`
}

// Recommendation is the best-matching user and the partition of their songs
type Recommendation struct {
	Match            User   `json:"match"`
	SongsInCommon    []Song `json:"songs_in_common"`
	SongsRecommended []Song `json:"songs_recommended"`
	Score            int    `json:"score"`
	MatchPercent     int    `json:"match_percent"`
}

// SongDegree pairs a song with how many users listen to it
type SongDegree struct {
	Song      Song `json:"song"`
	Listeners int  `json:"listeners"`
}

// Stats summarises the size of a graph
type Stats struct {
	Users int `json:"users"`
	Songs int `json:"songs"`
	Edges int `json:"edges"`
}
