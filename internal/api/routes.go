package api

import (
	"github.com/exynos7904/powerd/internal/dispatch"
	"github.com/exynos7904/powerd/internal/protocol"
	"github.com/gin-gonic/gin"
)

// NodeReader reads back control node values for the status endpoint.
type NodeReader interface {
	Read(path string) (string, error)
}

// Server exposes the power HAL operations over HTTP for local tooling.
type Server struct {
	d      *dispatch.Dispatcher
	nodes  NodeReader
	token  string
	engine *gin.Engine
}

// New builds the gin engine. When token is non-empty every route
// requires "Authorization: Bearer <token>".
func New(d *dispatch.Dispatcher, nodes NodeReader, token string) *Server {
	s := &Server{d: d, nodes: nodes, token: token}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if token != "" {
		r.Use(bearerAuth(token))
	}

	pw := r.Group("/power")
	{
		pw.POST("/interactive", s.forward(protocol.TypeSetInteractive))
		pw.POST("/hint", s.forward(protocol.TypePowerHint))
		pw.POST("/feature", s.forward(protocol.TypeSetFeature))
		pw.GET("/feature/:id", s.getFeature)
		pw.POST("/profile", s.forward(protocol.TypeSetProfile))
		pw.GET("/stats", s.getStats)
	}
	r.GET("/status", s.getStatus)

	s.engine = r
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}
