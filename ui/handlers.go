package ui

import (
	stderrors "errors"
	"net/http"

	"gouniform/adapters/samplefile"
	"gouniform/app"
	"gouniform/domain/core"
	domain "gouniform/domain/uniformity"
	"gouniform/internal/errors"
	"gouniform/internal/report"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"alpha":     s.stats.Alpha,
		"intervals": s.stats.Intervals,
		"tests":     domain.AllTests,
	})
}

func (s *Server) handleRunAll(c *gin.Context) {
	sample, ok := s.bindSample(c)
	if !ok {
		return
	}
	s.withBattery(c, sample, func(b *app.Battery) {
		c.JSON(http.StatusOK, b.Report())
	})
}

func (s *Server) handleRunTest(c *gin.Context) {
	name, err := domain.ParseTestName(c.Param("name"))
	if err != nil {
		s.writeError(c, errors.NotFound("test "+c.Param("name")))
		return
	}
	sample, ok := s.bindSample(c)
	if !ok {
		return
	}

	s.withBattery(c, sample, func(b *app.Battery) {
		outcome, err := b.Run(name)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
	})
}

func (s *Server) handleReport(c *gin.Context) {
	format, err := report.ParseFormat(c.DefaultQuery("format", "markdown"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	sample, ok := s.bindSample(c)
	if !ok {
		return
	}

	s.withBattery(c, sample, func(b *app.Battery) {
		body, err := report.Render(b.Report(), format)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, format.ContentType(), body)
	})
}

func (s *Server) bindSample(c *gin.Context) (domain.Sample, bool) {
	sample, err := samplefile.DecodeJSON(c.Request.Body)
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	return sample, true
}

// writeError maps application error codes onto HTTP statuses
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case code == errors.CodeInvalidInput, code == errors.CodeUnsupportedFormat:
		status = http.StatusBadRequest
	case code == errors.CodeNotFound, stderrors.Is(err, core.ErrUnknownTest):
		status = http.StatusNotFound
	default:
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
