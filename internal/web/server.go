// Package web serves the news form, the rendered cards and the monitoring
// endpoints.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/deusflow/newshub/internal/cache"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/metrics"
	"github.com/deusflow/newshub/internal/news"
	"github.com/deusflow/newshub/internal/translate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Aggregator produces the card HTML, or a user-facing message, for a request.
type Aggregator interface {
	AggregateForUI(ctx context.Context, category, language string) string
}

// CacheStats reports the summary cache counters shown on /metrics.
type CacheStats interface {
	Stats() cache.Stats
}

type Server struct {
	router *mux.Router
	agg    Aggregator
	stats  CacheStats
}

type page struct {
	Categories []string
	Languages  []string
	Category   string
	Language   string
	// Output is trusted: cards are escaped when rendered and messages are constants.
	Output template.HTML
}

// NewServer builds the router. stats may be nil.
func NewServer(agg Aggregator, stats CacheStats) *Server {
	s := &Server{
		router: mux.NewRouter(),
		agg:    agg,
		stats:  stats,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	s.router.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/news", s.newsHandler).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/api/news", s.apiNewsHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.metricsHandler).Methods(http.MethodGet)
	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down web server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, page{Language: translate.English})
}

func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	category := r.FormValue("category")
	language := r.FormValue("language")

	out := s.agg.AggregateForUI(r.Context(), category, language)
	if language == "" {
		language = translate.English
	}
	s.render(w, page{Category: category, Language: language, Output: template.HTML(out)})
}

// apiNewsHandler returns the bare card fragment for scripted clients.
func (s *Server) apiNewsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out := s.agg.AggregateForUI(r.Context(), q.Get("category"), q.Get("language"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) render(w http.ResponseWriter, p page) {
	p.Categories = news.Categories
	p.Languages = news.Languages

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, p); err != nil {
		logger.Error("Failed to render page", "error", err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !metrics.Global.Healthy() {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()
	if s.stats != nil {
		cs := s.stats.Stats()
		stats["cache_size"] = cs.Size
		stats["cache_max_size"] = cs.MaxSize
		stats["cache_hits"] = cs.Hits
		stats["cache_misses"] = cs.Misses
		stats["cache_evictions"] = cs.Evictions
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode JSON response", "error", err)
	}
}
