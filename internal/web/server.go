// Package web exposes the stored probe data over a read-only JSON API and
// a websocket that pushes live status snapshots.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"connlogger/internal/logging"
	"connlogger/internal/store"
)

// Server handles web requests.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	title      string
	log        *slog.Logger
}

// New creates a web server on the given port.
func New(st *store.Store, port int, title string) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux},
		store:      st,
		title:      title,
		log:        logging.Component("web"),
	}

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/summaries", s.handleSummaries)
	mux.HandleFunc("/api/hosts", s.handleHosts)
	mux.HandleFunc("/api/outages", s.handleOutages)
	mux.HandleFunc("/ws", s.handleStatusWS)

	return s
}

// Run blocks and serves HTTP traffic until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("web server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
