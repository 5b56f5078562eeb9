// Package recommender serves recommendations from a shared, read-only graph.
//
// The loaded graph is never mutated. Each recommendation clones it, adds the
// query user to the clone and scores there, so any number of requests can
// run against one snapshot while Reload builds and swaps in the next.
package recommender

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"harmonify/backend/internal/graph"
	"harmonify/backend/internal/metrics"
	"harmonify/backend/internal/state"
	apperrors "harmonify/backend/pkg/errors"
	"harmonify/backend/pkg/logger"
)

// ErrNotLoaded is returned by queries made before the first successful Reload
var ErrNotLoaded = errors.New("graph not loaded")

// Status describes the graph currently being served
type Status struct {
	Stats    graph.Stats `json:"stats"`
	LoadedAt time.Time   `json:"loaded_at"`
}

// Service owns the current graph snapshot
type Service struct {
	source    graph.RowSource
	loadOpts  []graph.LoadOption
	rankLimit int
	logger    *zap.Logger

	reloadMu sync.Mutex // one load at a time

	mu       sync.RWMutex
	base     *graph.Graph
	loadedAt time.Time
}

// New creates a service over source. Call Reload before serving queries.
// rankLimit caps Similar when the caller passes no limit.
func New(source graph.RowSource, rankLimit int, opts ...graph.LoadOption) *Service {
	log := logger.Named("recommender")
	return &Service{
		source:    source,
		loadOpts:  append(slices.Clone(opts), graph.WithLogger(log)),
		rankLimit: rankLimit,
		logger:    log,
	}
}

// NewWithGraph serves an already built graph. It has no row source, so
// Reload fails.
func NewWithGraph(g *graph.Graph, rankLimit int) *Service {
	s := New(nil, rankLimit)
	s.base = g
	s.loadedAt = time.Now()
	return s
}

// Reload rebuilds the graph from the row source and swaps it in. The previous
// graph stays in service if loading fails.
func (s *Service) Reload(ctx context.Context) (graph.Stats, error) {
	if s.source == nil {
		return graph.Stats{}, errors.New("no row source configured")
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	g, err := graph.LoadFrom(ctx, s.source, s.loadOpts...)
	if err != nil {
		metrics.RecordGraphLoad(time.Since(start), 0, 0, 0, err)
		s.logger.Error("Graph reload failed", zap.Error(err))
		return graph.Stats{}, err
	}

	stats := g.Stats()
	metrics.RecordGraphLoad(time.Since(start), stats.Users, stats.Songs, stats.Edges, nil)

	s.mu.Lock()
	s.base = g
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("Graph reloaded",
		zap.Int("users", stats.Users),
		zap.Int("songs", stats.Songs),
		zap.Int("edges", stats.Edges),
		zap.Duration("took", time.Since(start)),
	)
	return stats, nil
}

// Graph returns the current snapshot. Callers must treat it as read-only.
func (s *Service) Graph() (*graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.base == nil {
		return nil, ErrNotLoaded
	}
	return s.base, nil
}

// Status reports the size and age of the current snapshot
func (s *Service) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.base == nil {
		return Status{}, ErrNotLoaded
	}
	return Status{Stats: s.base.Stats(), LoadedAt: s.loadedAt}, nil
}

// Recommend adds the requested user to a copy of the graph and returns their
// best match. The request is normalized and validated first; its song ids
// must name songs in the graph and its genre must be one the graph knows.
func (s *Service) Recommend(ctx context.Context, req state.Request) (*graph.Recommendation, error) {
	start := time.Now()
	rec, err := s.recommend(ctx, req)

	outcome := metrics.OutcomeMatched
	switch {
	case err == nil:
	case apperrors.IsErrorType(err, apperrors.ErrorTypeRequest):
		outcome = metrics.OutcomeInvalid
	case isNoMatch(err):
		outcome = metrics.OutcomeNoMatch
	default:
		outcome = metrics.OutcomeError
	}
	pct := 0
	if rec != nil {
		pct = rec.MatchPercent
	}
	metrics.RecordRecommendation(outcome, time.Since(start), pct)

	if err != nil {
		s.logger.Debug("Recommendation not made",
			zap.String("username", req.Username),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Debug("Recommendation made",
		zap.String("username", req.Username),
		zap.String("match", rec.Match.Username),
		zap.Int("score", rec.Score),
	)
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, req state.Request) (*graph.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	base, err := s.Graph()
	if err != nil {
		return nil, err
	}
	if err := checkAgainstGraph(base, req); err != nil {
		return nil, err
	}

	g := base.Clone()
	g.AddUser(req.User())
	for _, id := range req.SongIDs {
		if err := g.AddEdge(req.Username, id); err != nil {
			return nil, err
		}
	}
	return g.Recommend(req.Username, req.Preferences())
}

// checkAgainstGraph rejects requests the graph cannot answer as asked
func checkAgainstGraph(g *graph.Graph, req state.Request) error {
	if _, ok := g.Vertex(req.Username); ok {
		return apperrors.NewInvalidRequest("username", "is already taken")
	}
	for _, id := range req.SongIDs {
		v, ok := g.Vertex(id)
		if !ok || !v.IsSong() {
			return apperrors.NewInvalidRequest("song_ids", "unknown song id "+id)
		}
	}
	if !slices.Contains(g.Genres(), req.Genre) {
		return apperrors.NewInvalidRequest("genre", "unknown genre "+req.Genre)
	}
	return nil
}

// Similar ranks the users most similar to an existing user. limit <= 0 uses
// the service's configured rank limit.
func (s *Service) Similar(ctx context.Context, username string, prefs graph.Preferences, limit int) ([]graph.Similarity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prefs.Duration != "" {
		if _, err := graph.ParseBucket(prefs.Duration); err != nil {
			return nil, err
		}
	}
	if limit <= 0 {
		limit = s.rankLimit
	}

	g, err := s.Graph()
	if err != nil {
		return nil, err
	}
	return g.RankUsers(username, prefs, limit)
}

func isNoMatch(err error) bool {
	var noMatch *apperrors.ErrNoEligibleMatch
	return errors.As(err, &noMatch)
}
