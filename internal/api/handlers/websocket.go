package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/game"
	"github.com/playmatatu/fairway/internal/ws"
)

// HandleSessionWebSocket streams a session's events and accepts swing commands.
func HandleSessionWebSocket(m *game.SessionManager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, m)
		if !ok {
			return
		}
		if err := hub.Serve(c.Writer, c.Request, s.ID, s); err != nil {
			// the upgrader has already written the HTTP error
			c.Error(err)
		}
	}
}
