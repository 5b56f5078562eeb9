package graph

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "harmonify/backend/pkg/errors"
	"harmonify/backend/pkg/logger"
)

// ============================================================================
// Graph Loader
// ============================================================================

// Row source names used in load errors
const (
	SourceSongs   = "songs"
	SourceListens = "listens"
)

// Minimum columns per row; trailing columns are ignored
const (
	songRowColumns   = songAttributeCount     // song_id, song_name, artist, duration_ms, genre
	listenRowColumns = userAttributeCount + 1 // username, name, age, province, song_id
)

// RowSource supplies the raw rows a graph is built from
type RowSource interface {
	// SongRows returns catalogue rows: [song_id, song_name, artist, duration_ms, genre]
	SongRows(ctx context.Context) ([][]string, error)
	// ListeningRows returns one row per (user, song): [username, name, age, province, song_id]
	ListeningRows(ctx context.Context) ([][]string, error)
}

type loadOptions struct {
	fullCatalogue bool
	logger        *zap.Logger
}

// LoadOption tunes Load and LoadFrom
type LoadOption func(*loadOptions)

// WithFullCatalogue adds every catalogue song as a vertex, including songs
// nobody listens to yet, so a new user can pick any of them.
func WithFullCatalogue() LoadOption {
	return func(o *loadOptions) { o.fullCatalogue = true }
}

// WithLogger overrides the logger used for the load summary
func WithLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// Load builds a graph from catalogue and listening rows.
//
// Each listening row adds its user (first row per username wins), its song
// and the edge between them. A listening row naming a song id missing from
// the catalogue fails with ErrUnresolvedSongReference. When the catalogue
// repeats an id, the last row wins.
func Load(songRows, listenRows [][]string, opts ...LoadOption) (*Graph, error) {
	o := loadOptions{logger: logger.Named("graph")}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	catalogue := make(map[string]Song, len(songRows))
	order := make([]string, 0, len(songRows))
	for i, row := range songRows {
		if len(row) < songRowColumns {
			return nil, apperrors.NewMalformedRow(SourceSongs, i+1, songRowColumns, len(row))
		}
		id := row[0]
		if _, seen := catalogue[id]; !seen {
			order = append(order, id)
		}
		catalogue[id] = Song{
			ID:         id,
			Name:       row[1],
			Artist:     row[2],
			DurationMS: row[3],
			Genre:      row[4],
		}
	}

	g := New()
	if o.fullCatalogue {
		for _, id := range order {
			g.AddSong(catalogue[id])
		}
	}

	for i, row := range listenRows {
		if len(row) < listenRowColumns {
			return nil, apperrors.NewMalformedRow(SourceListens, i+1, listenRowColumns, len(row))
		}
		username, songID := row[0], row[4]
		song, ok := catalogue[songID]
		if !ok {
			return nil, apperrors.NewUnresolvedSongReference(songID, username, i+1)
		}

		g.AddUser(User{Username: username, Name: row[1], Age: row[2], Province: row[3]})
		g.AddSong(song)
		// Users and songs share one key space; a collision would silently
		// attach the row to the wrong kind of vertex.
		if v := g.vertices[username]; v.kind != KindUser {
			return nil, fmt.Errorf("listens row %d: %w", i+1, apperrors.NewInvalidKind(username, v.kind.String()))
		}
		if v := g.vertices[songID]; v.kind != KindSong {
			return nil, fmt.Errorf("listens row %d: %w", i+1, apperrors.NewInvalidKind(songID, v.kind.String()))
		}
		if err := g.AddEdge(username, songID); err != nil {
			return nil, fmt.Errorf("listens row %d: %w", i+1, err)
		}
	}

	stats := g.Stats()
	o.logger.Info("Graph loaded",
		zap.Int("users", stats.Users),
		zap.Int("songs", stats.Songs),
		zap.Int("edges", stats.Edges),
		zap.Int("catalogue_rows", len(songRows)),
		zap.Int("listen_rows", len(listenRows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return g, nil
}

// LoadFrom fetches both row sets from src concurrently and builds a graph
func LoadFrom(ctx context.Context, src RowSource, opts ...LoadOption) (*Graph, error) {
	var songRows, listenRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := src.SongRows(gctx)
		if err != nil {
			return fmt.Errorf("failed to read song rows: %w", err)
		}
		songRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := src.ListeningRows(gctx)
		if err != nil {
			return fmt.Errorf("failed to read listening rows: %w", err)
		}
		listenRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Load(songRows, listenRows, opts...)
}
