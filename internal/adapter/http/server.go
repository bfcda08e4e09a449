package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

// maxBundleBytes caps POST /v1/alerts request bodies.
const maxBundleBytes = 1 << 20

// Server exposes health, readiness, metrics, and on-demand evaluation endpoints.
type Server struct {
	httpServer *http.Server
	engine     domain.Engine
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/alerts routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, engine domain.Engine, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine: engine,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/alerts", s.handleAlerts)

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

// alertView is an Alert as rendered for clients, with its icon id.
type alertView struct {
	domain.Alert
	Icon string `json:"icon"`
}

type alertsResponse struct {
	Alerts      []alertView `json:"alerts"`
	CalmMessage string      `json:"calm_message,omitempty"`
}

// handleAlerts evaluates one weather bundle synchronously. Place names are
// taken from the request as-is; no geocoding happens on this path.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	var bundle domain.WeatherBundle
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBundleBytes)).Decode(&bundle); err != nil {
		s.logger.Debug("rejecting weather bundle", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid weather bundle: " + err.Error()})
		return
	}

	alerts := s.engine.Derive(bundle.Observation, bundle.Forecast)

	resp := alertsResponse{Alerts: make([]alertView, 0, len(alerts))}
	hazard := false
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, alertView{Alert: a, Icon: domain.IconFor(a.Category)})
		if a.Severity.Rank() > domain.SeverityInfo.Rank() {
			hazard = true
		}
	}
	if !hazard {
		resp.CalmMessage = domain.CalmMessage(bundle.Observation)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
