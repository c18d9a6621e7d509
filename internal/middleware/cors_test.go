package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAllowedOrigins(t *testing.T) {
	dev := &config.Config{Environment: "development", FrontendURL: "http://localhost:5173"}
	assert.Equal(t, devOrigins, AllowedOrigins(dev))

	dev.FrontendURL = "http://golf.test"
	assert.Contains(t, AllowedOrigins(dev), "http://golf.test")

	prod := &config.Config{Environment: "production", FrontendURL: "https://fairway.example"}
	assert.Equal(t, []string{"https://fairway.example"}, AllowedOrigins(prod))
	assert.Empty(t, AllowedOrigins(&config.Config{Environment: "production"}))
}

func wsRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(WebSocketCORSCheck(cfg))
	r.GET("/ws", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func upgradeRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestWebSocketCORSCheck(t *testing.T) {
	prod := wsRouter(&config.Config{Environment: "production", FrontendURL: "https://fairway.example"})
	cases := []struct {
		origin string
		want   int
	}{
		{"https://fairway.example", http.StatusOK},
		{"https://evil.example", http.StatusForbidden},
		{"", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		prod.ServeHTTP(w, upgradeRequest(tc.origin))
		assert.Equal(t, tc.want, w.Code, tc.origin)
	}

	dev := wsRouter(&config.Config{Environment: "development"})
	w := httptest.NewRecorder()
	dev.ServeHTTP(w, upgradeRequest("http://localhost:3000"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.Config{Environment: "production", FrontendURL: "https://fairway.example"}))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://fairway.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://fairway.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	r := gin.New()
	r.Use(RequestLogger(logrus.NewEntry(l)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
