package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/fable/pkg/ports"
	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
	"github.com/aretw0/fable/pkg/story"
)

// Engine defines the facade surface the HTTP adapter drives.
type Engine interface {
	Stories() []string
	Lookup(name string) (*story.Story, bool)
	Contract(name string) (*schema.Schema, bool)
	NewState(name string, initial map[string]any) (*state.State, error)
	Run(ctx context.Context, sessionID, name string, st *state.State) error
	Session(ctx context.Context, sessionID, name string) (*state.State, error)
}

// Server exposes registered stories over HTTP.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Get("/stories", s.listStories)
	r.Get("/stories/{name}", s.getStory)
	r.Post("/stories/{name}/run", s.runStory)
	r.Get("/sessions/{id}", s.getSession)
	return r
}

// RunRequest is the body for POST /stories/{name}/run.
type RunRequest struct {
	// SessionID keys snapshot persistence; generated when empty.
	SessionID string `json:"session_id,omitempty"`
	// Context holds the initial named values for the state instance.
	Context map[string]any `json:"context,omitempty"`
}

// RunResponse reports the outcome of a story run.
// On failure, State carries whatever was written before the failing step.
type RunResponse struct {
	SessionID string         `json:"session_id"`
	State     map[string]any `json:"state"`
	Error     string         `json:"error,omitempty"`
}

// StoryResponse describes a registered story.
type StoryResponse struct {
	Name     string           `json:"name"`
	Steps    []story.StepInfo `json:"steps"`
	Contract []string         `json:"contract,omitempty"`
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"stories": s.engine.Stories()})
}

func (s *Server) getStory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.engine.Lookup(name)
	if !ok {
		http.Error(w, "story not found", http.StatusNotFound)
		return
	}

	resp := StoryResponse{Name: st.Name(), Steps: st.Outline()}
	if contract, ok := s.engine.Contract(name); ok {
		resp.Contract = contract.Names()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) runStory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.engine.Lookup(name); !ok {
		http.Error(w, "story not found", http.StatusNotFound)
		return
	}

	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("run: invalid request body", "story", name, "err", err)
		return
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	st, err := s.engine.NewState(name, body.Context)
	if err != nil {
		// The contract rejected an initial value; the validator's message
		// is the whole payload.
		s.writeJSON(w, http.StatusUnprocessableEntity, RunResponse{
			SessionID: sessionID,
			Error:     err.Error(),
		})
		return
	}

	if err := s.engine.Run(r.Context(), sessionID, name, st); err != nil {
		s.logger.Error("story run failed", "story", name, "session_id", sessionID, "err", err)
		s.writeJSON(w, http.StatusInternalServerError, RunResponse{
			SessionID: sessionID,
			State:     st.Snapshot(),
			Error:     err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, RunResponse{
		SessionID: sessionID,
		State:     st.Snapshot(),
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	name := r.URL.Query().Get("story")
	if name == "" {
		http.Error(w, "missing 'story' query parameter", http.StatusBadRequest)
		return
	}

	st, err := s.engine.Session(r.Context(), sessionID, name)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		s.logger.Error("session load failed", "session_id", sessionID, "story", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, RunResponse{
		SessionID: sessionID,
		State:     st.Snapshot(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
