package api

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/api/handlers"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/playmatatu/fairway/internal/game"
	"github.com/playmatatu/fairway/internal/middleware"
	"github.com/playmatatu/fairway/internal/ws"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, m *game.SessionManager, course *game.Course, hub *ws.Hub, cfg *config.Config, log *logrus.Entry) {
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg))

	// Snapshots change every tick; never let a proxy cache them.
	router.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Next()
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(m))
		v1.GET("/config", handlers.GetConfig(cfg, course))
		v1.POST("/sessions", handlers.CreateSession(m, cfg))

		session := v1.Group("/sessions/:id")
		session.Use(handlers.AuthMiddleware(cfg.JWTSecret))
		{
			session.GET("", handlers.GetSession(m))
			session.DELETE("", handlers.EndSession(m))
			session.POST("/advance", handlers.Advance(m))
			session.POST("/club", handlers.SelectClub(m))
			session.GET("/clubs", handlers.ListClubs(m))
			session.GET("/skills", handlers.ListSkills(m))
			session.POST("/skills/:skill", handlers.PurchaseSkill(m))
			session.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleSessionWebSocket(m, hub))
		}
	}
}
