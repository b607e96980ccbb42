package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luispater/anySteps/internal/interactions"
	"github.com/luispater/anySteps/internal/report"
	"github.com/luispater/anySteps/internal/runner"
	log "github.com/sirupsen/logrus"
)

// Server represents the API server
type Server struct {
	engine   *gin.Engine
	server   *http.Server
	handlers *APIHandlers
}

// ServerConfig contains configuration for the API server
type ServerConfig struct {
	Port  string
	Debug bool
	// Session is shared by every run; runs are serialized.
	Session interactions.Session
	// Reporters receive the step events of every run.
	Reporters []report.Reporter
	Scenarios map[string]*runner.Scenario
	// Screenshots is optional; without it the screenshot endpoint answers 404.
	Screenshots Screenshotter
	// BeforeRun is called before every scenario run, for example to clear cookies.
	BeforeRun func() error
}

// NewServer creates a new API server instance
func NewServer(config *ServerConfig) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := NewAPIHandlers(config)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		handlers: handlers,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:    ":" + config.Port,
		Handler: engine,
	}
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	v1 := s.engine.Group("/v1")
	{
		v1.POST("/scenarios/run", s.handlers.RunScenario)
		v1.GET("/scenarios", s.handlers.ListScenarios)
		v1.GET("/reports/:id", s.handlers.GetReport)
		v1.GET("/screenshot", s.handlers.TakeScreenshot)
	}

	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Any Steps API Server",
			"version": "1.0.0",
			"actions": s.handlers.actionNames,
			"endpoints": []string{
				"POST /v1/scenarios/run",
				"GET /v1/scenarios",
				"GET /v1/reports/:id",
				"GET /v1/screenshot",
			},
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the API server
func (s *Server) Start() error {
	log.Debugf("Starting API server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the API server
func (s *Server) Stop(ctx context.Context) error {
	log.Debug("Stopping API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	log.Debug("API server stopped")
	return nil
}
