package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/playmatatu/fairway/internal/game"
)

type holeInfo struct {
	ID  int `json:"id"`
	Par int `json:"par"`
}

// GetConfig returns the gameplay settings and course outline a client needs
// before creating a session.
func GetConfig(cfg *config.Config, course *game.Course) gin.HandlerFunc {
	holes := make([]holeInfo, 0, len(course.Holes))
	par := 0
	for _, h := range course.Holes {
		holes = append(holes, holeInfo{ID: h.ID, Par: h.Par})
		par += h.Par
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"course":            course.Name,
			"holes":             holes,
			"par":               par,
			"clubs":             course.Clubs.All(),
			"physics":           cfg.Physics(),
			"spin_enabled":      cfg.SpinEnabled,
			"aim_along_fairway": cfg.AimAlongFairway,
			"tick_rate_hz":      cfg.TickRateHz,
		})
	}
}
