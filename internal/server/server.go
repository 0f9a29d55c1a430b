// Package server exposes validation over HTTP: an upload page, a validate
// endpoint rendering the report fragment, and a PDF export of the latest run.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/costcheck-go/internal/config"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/report"
)

// Server is the HTTP service.
type Server struct {
	router *gin.Engine
	cfg    *config.AppConfig
	log    *zap.Logger

	// latest run, replaced by every successful validation
	mu     sync.RWMutex
	latest *run
}

type run struct {
	ID      string
	Brand   string
	Results []models.FileResult
	Doc     report.Document
}

// NewServer creates the server and registers its routes.
func NewServer(cfg *config.AppConfig, logger *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		router: router,
		cfg:    cfg,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Run-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/", s.index)

	api := s.router.Group("/api")
	{
		api.GET("/brands", s.listBrands)
		api.POST("/validate", s.validate)
		api.GET("/export", s.export)
	}
}

// Handler returns the router, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening on addr.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) setLatest(r *run) {
	s.mu.Lock()
	s.latest = r
	s.mu.Unlock()
}

func (s *Server) getLatest() *run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
