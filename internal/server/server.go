package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "github.com/EmilioGomex/oac-cix-project/internal/api/v1"
	"github.com/EmilioGomex/oac-cix-project/internal/catalog"
	"github.com/EmilioGomex/oac-cix-project/internal/config"
	"github.com/EmilioGomex/oac-cix-project/internal/store"
	"github.com/EmilioGomex/oac-cix-project/internal/supabase"
)

//go:embed all:static
var staticFiles embed.FS

// Server servidor HTTP de la aplicación
type Server struct {
	router *gin.Engine
	srv    *http.Server
	store  *store.Store
	log    *zap.Logger
}

// New crea el servidor y cablea todas las capas: log de ingesta local,
// cliente del backend y catálogo de evaluaciones.
func New(cfg *config.AppConfig, version string, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	ingest, err := store.New(filepath.Join(dataDir, "cix.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ingest log: %w", err)
	}

	backend, err := supabase.New(supabase.Options{
		BaseURL: cfg.Supabase.URL,
		Key:     cfg.Supabase.Key,
		Bucket:  cfg.Supabase.Bucket,
		Table:   cfg.Supabase.Table,
		Timeout: cfg.Supabase.Timeout(),
		Logger:  log,
	})
	if err != nil {
		ingest.Close()
		return nil, err
	}

	evaluations := catalog.New(catalog.Options{
		Gateway:    backend,
		IngestLog:  ingest,
		ListingTTL: cfg.Cache.ListingTTL(),
		MemoTTL:    cfg.Cache.MemoTTL(),
		Logger:     log,
	})

	handler := v1.NewHandler(evaluations, ingest, version, log)

	s := &Server{
		router: gin.New(),
		store:  ingest,
		log:    log,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(requestLogger(log))

	s.setupRoutes(handler, cfg.Server.DevMode)

	return s, nil
}

// setupRoutes registra la API, los endpoints operativos y la interfaz web
func (s *Server) setupRoutes(handler *v1.Handler, devMode bool) {
	// Rutas de la API v1
	api := s.router.Group("/api/v1")
	{
		handler.RegisterRoutes(api)
	}

	// Endpoints operativos
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Interfaz web
	if devMode {
		// Modo desarrollo: redirigir al servidor de desarrollo del frontend
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	// Producción: interfaz embebida en el binario
	sub, _ := fs.Sub(staticFiles, "static")

	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})

	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// corsMiddleware cabeceras CORS para el frontend en desarrollo
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger registra cada petición atendida con un identificador corto
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// El endpoint de métricas genera demasiado ruido en el log
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		reqID := uuid.NewString()[:8]
		c.Writer.Header().Set("X-Request-Id", reqID)

		c.Next()

		log.Info("petición atendida",
			zap.String("id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// Run arranca el servidor HTTP en addr y bloquea hasta que se detenga
func (s *Server) Run(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown detiene el servidor de forma ordenada y cierra el log de ingesta
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// GetStore log de ingesta local (para pruebas)
func (s *Server) GetStore() *store.Store {
	return s.store
}
