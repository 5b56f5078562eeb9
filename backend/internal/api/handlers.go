package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"harmonify/backend/internal/graph"
	"harmonify/backend/internal/state"
	apperrors "harmonify/backend/pkg/errors"
)

func (h *Handler) health(c *gin.Context) {
	status, err := h.svc.Status()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"stats":     status.Stats,
		"loaded_at": status.LoadedAt,
	})
}

// listSongs returns the catalogue by id, or by listener count with ?popular=true
func (h *Handler) listSongs(c *gin.Context) {
	g, err := h.svc.Graph()
	if err != nil {
		h.writeError(c, err)
		return
	}

	limit, err := queryLimit(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if popular, _ := strconv.ParseBool(c.Query("popular")); popular {
		c.JSON(http.StatusOK, gin.H{"songs": g.PopularSongs(limit)})
		return
	}

	songs := g.Songs()
	if limit > 0 && len(songs) > limit {
		songs = songs[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (h *Handler) listGenres(c *gin.Context) {
	g, err := h.svc.Graph()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": g.Genres()})
}

func (h *Handler) listVertices(c *gin.Context) {
	kind, err := graph.ParseKind(c.Query("kind"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	g, err := h.svc.Graph()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind.String(), "keys": g.AllVertices(kind)})
}

func (h *Handler) getUser(c *gin.Context) {
	g, err := h.svc.Graph()
	if err != nil {
		h.writeError(c, err)
		return
	}

	username := c.Param("username")
	user, err := g.User(username)
	if err != nil {
		h.writeError(c, err)
		return
	}
	songs, err := g.SongsOf(username)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "songs": songs})
}

func (h *Handler) similarUsers(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	prefs := graph.Preferences{
		Genre:    c.Query("genre"),
		Duration: c.Query("duration"),
	}
	ranked, err := h.svc.Similar(c.Request.Context(), c.Param("username"), prefs, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if ranked == nil {
		ranked = []graph.Similarity{}
	}
	c.JSON(http.StatusOK, gin.H{"similar": ranked})
}

func (h *Handler) recommend(c *gin.Context) {
	var req state.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.NewInvalidRequest("request", "body must be JSON with username, song_ids, genre and duration"))
		return
	}

	rec, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) reload(c *gin.Context) {
	stats, err := h.svc.Reload(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "stats": stats})
}

// queryLimit reads ?limit=, where absent means no limit
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperrors.NewInvalidRequest("limit", "must be a non-negative integer")
	}
	return limit, nil
}
