package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
}

// Handler wraps the gin engine with liveness and compression middleware
func (s *Server) Handler() http.Handler {
	compress := middleware.Compress(5, "application/json", "text/html", "text/markdown")
	return middleware.Heartbeat("/ping")(compress(s.router))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d in %.2fms",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), float64(time.Since(start).Nanoseconds())/1e6)
	}
}
