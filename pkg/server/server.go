package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// Server is the admin HTTP server wrapping a Pipeline.
type Server struct {
	config     config.ServerConfig
	pipeline   *Pipeline
	promReg    *prometheus.Registry
	httpServer *http.Server
	logger     *slog.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewServer creates the admin server. promReg is optional; nil disables the
// /metrics endpoint.
func NewServer(cfg config.ServerConfig, pipeline *Pipeline, promReg *prometheus.Registry) *Server {
	return &Server{
		config:   cfg,
		pipeline: pipeline,
		promReg:  promReg,
		logger:   slog.Default().With("component", "server"),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("admin server listening", "address", s.config.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("admin server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down admin server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /eval", s.handleEval)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.promReg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{}))
	}
	return mux
}

// evalRequest is the JSON body accepted by POST /eval. Attribute values for
// each list are given as name/value maps.
type evalRequest struct {
	Request map[string]string `json:"request"`
	Control map[string]string `json:"control"`
}

// evalResponse is the JSON reply from POST /eval.
type evalResponse struct {
	RequestID string            `json:"request_id"`
	Rcode     string            `json:"rcode"`
	Reply     map[string]string `json:"reply,omitempty"`
	Control   map[string]string `json:"control,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var body evalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req := radius.NewRequest()
	for name, value := range body.Request {
		req.Request.Add(name, value)
	}
	for name, value := range body.Control {
		req.Control.Add(name, value)
	}

	rcode := s.pipeline.ProcessRequest(r.Context(), req)

	resp := evalResponse{
		RequestID: req.ID.String(),
		Rcode:     rcode.String(),
		Reply:     pairsToMap(req.Reply),
		Control:   pairsToMap(req.Control),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode eval response", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","blocks":%d}`+"\n", s.pipeline.BlockCount())
}

func pairsToMap(pairs radius.Pairs) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p.Value
		}
	}
	return m
}
