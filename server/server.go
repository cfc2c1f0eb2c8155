// Package server exposes the orchestration engine over HTTP. It is a thin
// transport: request decoding, input checks and status mapping live here,
// all routing and execution semantics live behind the Handler interface.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/logging"
)

// Handler executes one user request. *engine.Engine and the capmesh façade
// both satisfy it.
type Handler interface {
	Handle(ctx context.Context, message, sessionID string) (*core.CapabilityResult, error)
}

// RunRequest is the POST /run payload.
type RunRequest struct {
	Input     string `json:"input"`
	SessionID string `json:"session_id,omitempty"`
}

// Options configures a Server.
type Options struct {
	// Addr is the listen address. Defaults to ":8080".
	Addr string

	// Logger defaults to NoOp.
	Logger logging.Logger

	// ReadTimeout and WriteTimeout guard the HTTP listener. Zero keeps the
	// net/http defaults.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front end.
type Server struct {
	handler Handler
	logger  logging.Logger
	httpSrv *http.Server
}

// New constructs a Server around a Handler.
func New(handler Handler, optFns ...func(o *Options)) *Server {
	opts := Options{
		Addr:   ":8080",
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		handler: handler,
		logger:  opts.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/run", s.handleRun)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         opts.Addr,
		Handler:      mux,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks serving HTTP until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.httpSrv.Addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Routes returns the handler for mounting in tests or a parent mux.
func (s *Server) Routes() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, http.StatusBadRequest, "input must not be empty")
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Input, req.SessionID)
	if err != nil {
		s.logger.Error("request failed", "error", err.Error(), "session_id", req.SessionID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
