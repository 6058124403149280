// Package web serves the flightcal browser UI: a lookup form, a selection
// page for the candidate flights (with editable fields), and a manual
// entry form with a timezone picker. Successful submissions download an
// .ics file.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Lookuper is the slice of the schedule service the web UI needs.
type Lookuper interface {
	Lookup(ctx context.Context, flightNumber string, date time.Time) ([]model.Flight, error)
}

// Server is the flightcal web UI.
type Server struct {
	svc      Lookuper
	sessions *sessionStore
	tmpl     *template.Template
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer builds the web UI around a lookup service. A nil logger
// disables logging.
func NewServer(svc Lookuper, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatDuration": formatDuration,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		svc:      svc,
		sessions: newSessionStore(),
		tmpl:     tmpl,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /create_event", s.handleCreateEvent)
	s.mux.HandleFunc("POST /create_event/{index}", s.handleCreateEventSelected)
	s.mux.HandleFunc("GET /manual_entry", s.handleManualEntry)
	s.mux.HandleFunc("POST /create_manual_event", s.handleCreateManualEvent)

	return s, nil
}

// ServeHTTP dispatches to the route table with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request handled",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// Run serves the UI until the context is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web UI listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down web UI")
		return srv.Shutdown(shutdownCtx)
	}
}

// formatDuration renders a block time as "15h 45m" for the selection page.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
