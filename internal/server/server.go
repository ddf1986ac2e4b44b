// Package server exposes the scorer and matcher over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/ai"
	"github.com/spigell/resume-scorer/internal/ats"
	"github.com/spigell/resume-scorer/internal/matching"
	"github.com/spigell/resume-scorer/internal/secrets"
)

const (
	healthPath    = "/health"
	tokenEnvName  = "RESUME_SCORER_API_TOKEN"
	readTimeout   = 30 * time.Second
	writeTimeout  = 2 * time.Minute
	idleTimeout   = 60 * time.Second
	headerTimeout = 10 * time.Second
)

// Deps are the engines the handlers call into.
type Deps struct {
	Scorer  *ats.Scorer
	Matcher *matching.Matcher
	// Rewriter is optional.
	Rewriter ai.SummaryRewriter
	Logger   *zap.Logger
}

type Server struct {
	cfg        Config
	deps       Deps
	token      string
	limiter    *clientLimiter
	logger     *zap.Logger
	handler    http.Handler
	httpServer *http.Server
}

func New(cfg Config, deps Deps) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Scorer == nil || deps.Matcher == nil {
		return nil, errors.New("server: scorer and matcher are required")
	}

	token, err := secrets.LoadOptional(secrets.Source{
		Name:  "api token",
		Value: cfg.Token,
		File:  cfg.TokenFile,
		Env:   tokenEnvName,
	})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		token:  token,
		logger: logger,
	}
	if cfg.RateLimit.Enabled {
		s.limiter = newClientLimiter(cfg.RateLimit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, s.handleHealth)
	mux.HandleFunc("POST /v1/ats/score", s.handleScore)
	mux.HandleFunc("POST /v1/ats/score-text", s.handleScoreText)
	mux.HandleFunc("POST /v1/match", s.handleMatch)

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(s.withAuth(mux))))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: headerTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// AuthEnabled reports whether a bearer token is required.
func (s *Server) AuthEnabled() bool {
	return s.token != ""
}

// Run listens until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()), zap.Bool("auth", s.AuthEnabled()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(err))
}
