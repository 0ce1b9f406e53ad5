// Package httpapi exposes the scheduler over a small REST surface. All
// bodies are JSON; failures carry an {"error": ...} object with the
// matching status code.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nebulus/blackbox/internal/logger"
	"github.com/nebulus/blackbox/internal/scheduler"
	"github.com/nebulus/blackbox/internal/tools"
)

// Server serves the task API and the tool invocation surface.
type Server struct {
	engine   *scheduler.Engine
	registry *tools.Registry
	log      *logger.Logger
	http     *http.Server
}

// taskRequest is the POST /api/tasks payload.
type taskRequest struct {
	Title      string   `json:"title"`
	Prompt     string   `json:"prompt"`
	Schedule   string   `json:"schedule"`
	Recipients []string `json:"recipients,omitempty"`
}

// New creates a Server listening on addr. The prometheus gatherer backs
// the /metrics endpoint; pass prometheus.DefaultGatherer outside tests.
func New(addr string, engine *scheduler.Engine, registry *tools.Registry, log *logger.Logger, gatherer prometheus.Gatherer) *Server {
	s := &Server{engine: engine, registry: registry, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/run", s.handleRunTask)
	mux.HandleFunc("GET /api/tools", s.handleListTools)
	mux.HandleFunc("POST /api/tools/{name}", s.handleInvokeTool)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.withLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", logger.Field{Key: "addr", Value: s.http.Addr})
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the request handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	jobs, err := s.engine.Jobs()
	if err != nil {
		s.log.Error("failed to list jobs", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if jobs == nil {
		jobs = []scheduler.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Prompt) == "" ||
		strings.TrimSpace(req.Schedule) == "" {
		writeError(w, http.StatusBadRequest, "title, prompt and schedule are required")
		return
	}

	_, message, err := s.engine.Schedule(req.Title, req.Prompt, req.Schedule, req.Recipients)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	message, err := s.engine.Delete(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleRunTask(w http.ResponseWriter, r *http.Request) {
	// The run outlives the request; only its start is tied to it.
	message, err := s.engine.RunNow(context.WithoutCancel(r.Context()), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Definitions())
}

// handleInvokeTool runs a named tool with the request body as its JSON
// arguments. Success and failure are both 200 with a text result; the
// caller branches on the Error: prefix, not the status code.
func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := s.registry.Get(name); !ok {
		writeError(w, http.StatusNotFound, "tool not found: "+name)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	args := strings.TrimSpace(string(body))
	if args == "" {
		args = "{}"
	}

	result := s.registry.Invoke(context.WithoutCancel(r.Context()), name, args, 0)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("http request",
			logger.Field{Key: "method", Value: r.Method},
			logger.Field{Key: "path", Value: r.URL.Path},
			logger.Field{Key: "duration", Value: time.Since(start)})
	})
}

func writeEngineError(w http.ResponseWriter, err error) {
	var notFound *scheduler.ErrJobNotFound
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
