// Package httpapi exposes the search service over HTTP. It is a thin
// surface: parameter parsing, limit clamping, and CORS live here; every
// ranking decision lives in internal/search.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/antoinebou12/horaire-ets/internal/config"
	"github.com/antoinebou12/horaire-ets/internal/search"
)

// Server wraps the gin engine and its http.Server.
type Server struct {
	engine  *gin.Engine
	httpSrv *http.Server
	logger  *slog.Logger
}

// NewServer builds the HTTP server around the search service.
func NewServer(cfg *config.Config, svc *search.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), corsMiddleware())

	h := newHandlers(cfg, svc)
	engine.GET("/healthz", h.health)
	engine.GET("/courses", h.listCourses)
	engine.GET("/courses/search", h.searchCourses)
	engine.GET("/courses/autocomplete", h.autocompleteCourses)
	// Aliases without the /courses prefix, matching the documented surface.
	engine.GET("/search", h.searchCourses)
	engine.GET("/autocomplete", h.autocompleteCourses)

	return &Server{
		engine: engine,
		httpSrv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout.Std(),
			WriteTimeout: cfg.Server.WriteTimeout.Std(),
		},
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http_listening", slog.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http_request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}

// corsMiddleware allows cross-origin reads; the API is public and
// read-only.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
