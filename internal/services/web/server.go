// Package web hosts the browser-facing catalog service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/observerset/atlasview/internal/storage"
	"github.com/observerset/atlasview/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Config defines the inputs for the catalog web server.
type Config struct {
	HTTPAddr string
	AppName  string
}

// CatalogStore is the storage surface the web service needs.
type CatalogStore interface {
	storage.CatalogStore
}

// Server hosts the catalog browser HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer assembles the catalog web server around a session store.
func NewServer(cfg Config, store CatalogStore, emitter *telemetry.Emitter) (*Server, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8090"
	}
	appName := cfg.AppName
	if appName == "" {
		appName = "Satellite Observer Set"
	}

	h := newHandler(appName, store, emitter)
	return &Server{
		httpAddr: addr,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: h.routes(),
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("catalog browser listening on http://%s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
