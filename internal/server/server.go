// Package server exposes the extraction pipeline over HTTP: a health
// probe, a raw PDF upload endpoint, and the lease fact extraction
// endpoint.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"leaselens/internal/model"
)

// Extractor is the pipeline surface the server needs
type Extractor interface {
	ExtractFile(ctx context.Context, path string) *model.LeaseFacts
}

// Server handles lease PDF uploads and extraction requests
type Server struct {
	extractor Extractor
	config    model.ServerConfig
	mux       *http.ServeMux
}

// New creates a server around an extractor
func New(extractor Extractor, config model.ServerConfig) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 25 << 20
	}
	if config.UploadDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			config.UploadDir = filepath.Join(home, "Downloads", "pdf_uploads")
		} else {
			config.UploadDir = filepath.Join(os.TempDir(), "pdf_uploads")
		}
	}

	s := &Server{
		extractor: extractor,
		config:    config,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /upload-pdf", s.handleUpload)
	s.mux.HandleFunc("POST /extract-lease-facts", s.handleExtract)
	return s
}

// Handler returns the routing handler (tests drive this directly)
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving requests until the listener fails or
// the context is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", s.config.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
