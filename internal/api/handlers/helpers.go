package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/game"
)

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound), errors.Is(err, game.ErrSessionClosed):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidSkillPurchase),
		errors.Is(err, game.ErrUnusableClub),
		errors.Is(err, game.ErrSwingInProgress):
		return http.StatusConflict
	case errors.Is(err, game.ErrUnknownClub):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// respondAction answers a command that may have been rejected by the round.
// A rejected command still reports the resulting snapshot.
func respondAction(c *gin.Context, snap game.Snapshot, err error) {
	if err == nil {
		c.JSON(http.StatusOK, snap)
		return
	}
	status := statusFor(err)
	if status == http.StatusNotFound || snap.Holes == 0 {
		respondError(c, err)
		return
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "snapshot": snap})
}

func lookup(c *gin.Context, m *game.SessionManager) (*game.Session, bool) {
	s, err := m.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}
