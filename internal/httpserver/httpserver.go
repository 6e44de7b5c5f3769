// Package httpserver exposes the analysis pipeline over a small HTTP API
// with a server-sent-events progress stream.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gitgrade/gitgrade/internal/contract"
)

// shutdownTimeout bounds how long in-flight requests may run once the
// server has been asked to stop.
const shutdownTimeout = 10 * time.Second

// Server bundles the HTTP API with the dependencies its handlers need.
type Server struct {
	baseCfg *contract.Config
	source  contract.CommitSource
	mgr     contract.CacheManager
	broker  *ProgressBroker
	engine  *gin.Engine
}

// New builds the router and wires all API routes. The base config
// provides defaults that individual requests may override.
func New(baseCfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager) *Server {
	s := &Server{
		baseCfg: baseCfg,
		source:  source,
		mgr:     mgr,
		broker:  NewProgressBroker(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/progress", s.handleProgress)
	api.POST("/analyze/git", s.handleAnalyzeGit)
	api.POST("/analyze/code", s.handleAnalyzeCode)

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the configured address until the context is cancelled,
// then drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.baseCfg.ServeAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
