package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/playmatatu/fairway/internal/game"
)

const commandTimeout = 5 * time.Second

func commandContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), commandTimeout)
}

// CreateSession starts a round and returns the token that controls it.
func CreateSession(m *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.Create()
		if err != nil {
			respondError(c, err)
			return
		}

		token, exp, err := IssueSessionToken(cfg.JWTSecret, s.ID, cfg.TokenTTL(), time.Now())
		if err != nil {
			m.End(s.ID)
			respondError(c, err)
			return
		}

		ctx, cancel := commandContext(c)
		defer cancel()
		snap, err := s.Snapshot(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("X-Session-ID", s.ID)
		c.JSON(http.StatusCreated, gin.H{
			"session_id": s.ID,
			"token":      token,
			"expires_at": exp,
			"snapshot":   snap,
		})
	}
}

func GetSession(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		snap, err := s.Snapshot(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// Advance is the single swing button: start, catch power, catch accuracy,
// catch spin.
func Advance(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		snap, err := s.Advance(ctx)
		respondAction(c, snap, err)
	}
}

func SelectClub(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Club string `json:"club" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "club required"})
			return
		}

		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		snap, err := s.SelectClub(ctx, req.Club)
		respondAction(c, snap, err)
	}
}

func PurchaseSkill(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		skill, snap, err := s.PurchaseSkill(ctx, c.Param("skill"))
		if err != nil {
			respondAction(c, snap, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"skill": skill, "snapshot": snap})
	}
}

func ListClubs(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		clubs, err := s.Clubs(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clubs": clubs})
	}
}

func ListSkills(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		ctx, cancel := commandContext(c)
		defer cancel()
		skills, err := s.Skills(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"skills": skills})
	}
}

func EndSession(m *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.End(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
