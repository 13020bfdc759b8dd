// Package server is the HTTP layer around the decoder and estimator:
// file upload in, volume/mass/preview out. It owns no computation of
// its own.
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mastercraft/stlmass/internal/config"
	"github.com/mastercraft/stlmass/pkg/materials"
)

// Server wires the routes, material store and working directories.
type Server struct {
	cfg    config.Config
	store  *materials.Store
	router *gin.Engine
}

// New creates a server, making sure the upload and image directories
// exist.
func New(cfg config.Config, store *materials.Store) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.ImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20

	s := &Server{cfg: cfg, store: store, router: router}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.SetHTMLTemplate(uploadPage)
	s.router.GET("/", s.Index)
	s.router.Static("/images", s.cfg.ImageDir)

	api := s.router.Group("/api")
	{
		api.POST("/calculate", s.Calculate)
		api.GET("/materials", s.Materials)
	}
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	log.Printf("listening on %s", s.cfg.ListenAddr)
	return s.router.Run(s.cfg.ListenAddr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
