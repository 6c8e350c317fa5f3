package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/city-weather/internal/domain"
	"github.com/couchcryptid/city-weather/internal/pipeline"
)

// maxImageSide bounds the w and h query parameters of the background route.
const maxImageSide = 4096

// Searcher runs lookups and exposes the displayed state.
// It is implemented by *pipeline.Pipeline.
type Searcher interface {
	Search(ctx context.Context, city string) (pipeline.Outcome, error)
	State() domain.UiState
}

// Backgrounds renders a background asset as a PNG at the given size.
type Backgrounds interface {
	WritePNG(w io.Writer, id domain.AssetID, width, height int) error
}

// Server exposes the weather UI, its JSON API, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer  *http.Server
	app         Searcher
	backgrounds Backgrounds
	windowSize  int
	logger      *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, app Searcher, backgrounds Backgrounds, windowSize int, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		app:         app,
		backgrounds: backgrounds,
		windowSize:  windowSize,
		logger:      logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /search", s.handleSearchForm)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /background/{asset}", s.handleBackground)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, s.app.State(), nil)
}

// handleSearchForm runs the search submitted from the page. The city field is
// passed on exactly as typed.
func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	out, err := s.app.Search(r.Context(), r.PostForm.Get("city"))
	if errors.Is(err, pipeline.ErrBusy) {
		s.renderPage(w, http.StatusTooManyRequests, out.State, &busyNotice)
		return
	}
	s.renderPage(w, http.StatusOK, out.State, out.Notice)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	out, err := s.app.Search(r.Context(), r.URL.Query().Get("city"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, pipeline.ErrBusy):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, out)
	default:
		writeJSON(w, http.StatusBadGateway, out)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.State())
}

func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	id := domain.AssetID(r.PathValue("asset"))
	if !slices.Contains(domain.Assets(), id) {
		http.NotFound(w, r)
		return
	}

	width, err := sizeParam(r, "w", s.windowSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := sizeParam(r, "h", s.windowSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.backgrounds.WritePNG(w, id, width, height); err != nil {
		s.logger.Error("render background failed", "asset", id, "error", err)
		http.Error(w, "background unavailable", http.StatusInternalServerError)
	}
}

func sizeParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxImageSide {
		return 0, errors.New("invalid " + name + ": must be between 1 and " + strconv.Itoa(maxImageSide))
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
