package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/gin-gonic/gin"
)

// bearerAuth checks the same shared token the websocket client sends
// as its "token" query parameter; both come from config.Config.Token.
func bearerAuth(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		got, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			slog.Warn("rejected unauthenticated request", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, protocol.ErrorPayload{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}

// requestLogger logs each request through slog instead of gin's writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
