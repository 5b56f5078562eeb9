package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"harmonify/backend/internal/recommender"
	apperrors "harmonify/backend/pkg/errors"
)

// writeError maps service errors to HTTP status codes. Anything unrecognised
// is logged and reported as 500 without its message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		unknown   *apperrors.ErrUnknownVertex
		noMatch   *apperrors.ErrNoEligibleMatch
		invalid   *apperrors.ErrInvalidRequest
		badKind   *apperrors.ErrInvalidKind
		selfMatch *apperrors.ErrSelfComparison
	)

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason, "field": invalid.Field})
	case errors.As(err, &badKind), errors.As(err, &selfMatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unknown):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found: " + unknown.Key})
	case errors.As(err, &noMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user shares a song with " + noMatch.Username})
	case errors.Is(err, recommender.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph not loaded"})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
