package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/config"
	"github.com/mworley/recipebox/backend/internal/api"
	"github.com/mworley/recipebox/backend/internal/middleware"
	"github.com/mworley/recipebox/backend/internal/service"
)

// Server wraps the HTTP server and its routed dependencies.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires the router, middleware and API handlers.
func New(cfg *config.Config, db *gorm.DB, auth *service.AuthService, images service.ImageStore, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	api.RegisterRoutes(router, db, auth, images, redisClient)

	// Locally stored images are served straight from disk. With S3 the
	// recipe image URLs point at the bucket instead.
	if cfg.S3Bucket == "" {
		router.Static("/media", cfg.MediaDir)
	}

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Router exposes the underlying engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
