package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/presentation/graph"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// maxBodyBytes bounds request bodies; payloads are a single event or state name.
const maxBodyBytes = 64 << 10

// Server exposes a session.Manager over HTTP. It implements the generated ServerInterface.
type Server struct {
	manager  *session.Manager
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer exposes the given registry at GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler for the manager.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", s.GetSpec)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.paramError,
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSpec serves the embedded OpenAPI document.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := rawSpec()
	if err != nil {
		s.writeStatus(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	if _, err := w.Write(spec); err != nil {
		s.logger.Error("spec response write failed", "err", err)
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetStates handles GET /states. With ?event=e only states that handle e are listed.
func (s *Server) GetStates(w http.ResponseWriter, r *http.Request, params GetStatesParams) {
	machine := fsm.New(s.manager.Definition())

	states := machine.States()
	if params.Event != nil {
		states = machine.StatesWithEvent(*params.Event)
	}
	s.writeJSON(w, http.StatusOK, StatesResponse{States: states})
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeGraph(w, graph.GenerateMermaid(s.manager.Definition(), nil))
}

// GetSessionGraph handles GET /sessions/{id}/graph, highlighting the session path.
func (s *Server) GetSessionGraph(w http.ResponseWriter, r *http.Request, id SessionID) {
	snap, err := s.manager.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeGraph(w, graph.GenerateMermaid(s.manager.Definition(), graph.OverlayFromSnapshot(snap)))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, SessionsResponse{Sessions: ids})
}

// StartSession handles PUT /sessions/{id}. Existing sessions are returned untouched.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	if _, err := s.manager.Start(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSession(w, r, id)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	s.writeSession(w, r, id)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	if err := s.manager.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Trigger handles POST /sessions/{id}/trigger.
func (s *Server) Trigger(w http.ResponseWriter, r *http.Request, id SessionID) {
	var body TriggerJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	// Only a missing field is rejected here; "" goes to the machine.
	if body.Event == nil {
		s.writeStatus(w, r, http.StatusBadRequest, errors.New("event is required"))
		return
	}

	snap, err := s.manager.Trigger(r.Context(), id, *body.Event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSnapshot(snap))
}

// ChangeState handles POST /sessions/{id}/change.
func (s *Server) ChangeState(w http.ResponseWriter, r *http.Request, id SessionID) {
	var body ChangeStateJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	if body.State == nil {
		s.writeStatus(w, r, http.StatusBadRequest, errors.New("state is required"))
		return
	}

	snap, err := s.manager.ChangeState(r.Context(), id, *body.State)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSnapshot(snap))
}

// Undo handles POST /sessions/{id}/undo.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request, id SessionID) {
	ok, snap, err := s.manager.Undo(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, StepResponse{Ok: ok, Snapshot: toSnapshot(snap)})
}

// Redo handles POST /sessions/{id}/redo.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request, id SessionID) {
	ok, snap, err := s.manager.Redo(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, StepResponse{Ok: ok, Snapshot: toSnapshot(snap)})
}

// Reset handles POST /sessions/{id}/reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request, id SessionID) {
	snap, err := s.manager.Reset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSnapshot(snap))
}

// ClearHistory handles POST /sessions/{id}/clear-history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request, id SessionID) {
	snap, err := s.manager.ClearHistory(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSnapshot(snap))
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, id string) {
	machine, err := s.manager.Machine(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := machine.Snapshot()
	s.writeJSON(w, http.StatusOK, Session{
		Current:         snap.Current,
		History:         snap.History,
		Cursor:          snap.Cursor,
		CanUndo:         machine.CanUndo(),
		CanRedo:         machine.CanRedo(),
		PermittedEvents: machine.PermittedEvents(),
	})
}

func toSnapshot(snap domain.Snapshot) Snapshot {
	return Snapshot{Current: snap.Current, History: snap.History, Cursor: snap.Cursor}
}

// paramError reports malformed path or query parameters.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeStatus(w, r, http.StatusBadRequest, err)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeStatus(w, r, http.StatusBadRequest, errors.New("invalid request body"))
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) writeGraph(w http.ResponseWriter, diagram string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(diagram)); err != nil {
		s.logger.Error("graph response write failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeStatus(w, r, statusFor(err), err)
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
