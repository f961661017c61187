// Package httpapi exposes the watch pipeline over HTTP so an external
// scheduler (cron, workflow engine) can drive ticks.
package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Server holds the state for the REST API server.
type Server struct {
	watch  driving.WatchService
	router *gin.Engine
}

// NewServer creates a new Server instance around a watch service.
func NewServer(watch driving.WatchService) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		watch:  watch,
		router: r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	logger.Info("http: listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.healthCheck)
	s.router.POST("/api/watch/tick", s.handleTick)
	s.router.GET("/api/watch/status", s.handleStatus)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// handleTick runs one bounded pass over the inbox. The drive credential
// rides on the request and is scoped to this single tick.
func (s *Server) handleTick(c *gin.Context) {
	token := requestToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"ok":    false,
			"error": domain.ErrMissingCredential.Error(),
		})
		return
	}

	ctx := driven.WithToken(c.Request.Context(), token)
	report, err := s.watch.Tick(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrListFailed) {
			status = http.StatusBadGateway
		}
		logger.Error("tick failed: %v", err)
		c.JSON(status, gin.H{"ok": false, "error": rootKind(err)})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.watch.Status())
}

// requestToken extracts the per-request bearer credential. The
// Authorization header wins over the token cookie.
func requestToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		if token := strings.TrimSpace(after); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// rootKind maps a tick error to its stable wire identifier.
func rootKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrListFailed):
		return domain.ErrListFailed.Error()
	case errors.Is(err, domain.ErrMissingCredential):
		return domain.ErrMissingCredential.Error()
	default:
		return err.Error()
	}
}
