// Package http serves the meeting catalog API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/meeting-locator/internal/catalog"
	"github.com/couchcryptid/meeting-locator/internal/domain"
)

// CatalogProvider exposes the published catalog to the API handlers.
// Implemented by catalog.Builder.
type CatalogProvider interface {
	State() catalog.State
	Snapshot() (*catalog.Snapshot, bool)
	Err() error
	CheckReadiness(ctx context.Context) error
}

// Server exposes the meetings API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	provider   CatalogProvider
	reload     func()
	logger     *slog.Logger
}

// NewServer creates an HTTP server. reload is invoked (asynchronously) by
// POST /api/reload; pass nil to disable the endpoint.
func NewServer(addr string, provider CatalogProvider, reload func(), logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		reload:   reload,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/meetings", s.handleMeetings)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("POST /api/reload", s.handleReload)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// meetingPayload is one API meeting: the domain fields plus the derived
// display helpers the list rendering needs.
type meetingPayload struct {
	domain.Meeting
	JoinURL        string `json:"join_url,omitempty"`
	DisplayAddress string `json:"display_address,omitempty"`
}

type meetingsResponse struct {
	LoadID   string           `json:"load_id"`
	LoadedAt time.Time        `json:"loaded_at"`
	Count    int              `json:"count"`
	Meetings []meetingPayload `json:"meetings"`
}

type markerPayload struct {
	Coordinates domain.Coordinates `json:"coordinates"`
	Count       int                `json:"count"`
	Meetings    []meetingPayload   `json:"meetings"`
}

type markersResponse struct {
	LoadID   string          `json:"load_id"`
	LoadedAt time.Time       `json:"loaded_at"`
	Markers  []markerPayload `json:"markers"`
}

func (s *Server) handleMeetings(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w)
	if !ok {
		return
	}

	filtered := domain.Filter(snap.Meetings, criteriaFromQuery(r))
	writeJSON(w, http.StatusOK, meetingsResponse{
		LoadID:   snap.LoadID,
		LoadedAt: snap.LoadedAt,
		Count:    len(filtered),
		Meetings: toPayload(filtered),
	})
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr503(w)
	if !ok {
		return
	}

	filtered := domain.Filter(snap.Meetings, criteriaFromQuery(r))
	groups := domain.GroupByLocation(filtered)

	markers := make([]markerPayload, len(groups))
	for i, g := range groups {
		markers[i] = markerPayload{
			Coordinates: g.Coordinates,
			Count:       len(g.Meetings),
			Meetings:    toPayload(g.Meetings),
		}
	}

	writeJSON(w, http.StatusOK, markersResponse{
		LoadID:   snap.LoadID,
		LoadedAt: snap.LoadedAt,
		Markers:  markers,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if s.reload == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "reload disabled"})
		return
	}
	go s.reload()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reloading"})
}

// snapshotOr503 fetches the Ready snapshot or answers 503 with the builder
// state, so API consumers never see a partially built catalog.
func (s *Server) snapshotOr503(w http.ResponseWriter) (*catalog.Snapshot, bool) {
	snap, ok := s.provider.Snapshot()
	if ok {
		return snap, true
	}

	body := map[string]string{"status": s.provider.State().String()}
	if err := s.provider.Err(); err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusServiceUnavailable, body)
	return nil, false
}

func criteriaFromQuery(r *http.Request) domain.Criteria {
	q := r.URL.Query()
	return domain.Criteria{
		Day:    q.Get("day"),
		Time:   q.Get("time"),
		Type:   q.Get("type"),
		Format: q.Get("format"),
	}
}

func toPayload(meetings []domain.Meeting) []meetingPayload {
	out := make([]meetingPayload, len(meetings))
	for i, m := range meetings {
		out[i] = meetingPayload{Meeting: m}
		if link, ok := domain.JoinLink(m); ok {
			out[i].JoinURL = link
		}
		if m.Address != "" {
			out[i].DisplayAddress = domain.DisplayAddress(m.Address)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
