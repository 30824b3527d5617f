package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"parsonlabs/assistant/pkg/config"
	"parsonlabs/assistant/pkg/proxy/handlers"
	"parsonlabs/assistant/pkg/proxy/middleware"
	"parsonlabs/assistant/pkg/telemetry/metrics"
	"parsonlabs/assistant/pkg/telemetry/tracing"
	"parsonlabs/assistant/pkg/upstream"
)

// Deps are the components the server routes requests to.
type Deps struct {
	// Upstream is required.
	Upstream *upstream.Client

	// Metrics is nil when metrics are disabled.
	Metrics *metrics.Collector

	// Tracer is nil when tracing is not set up.
	Tracer *tracing.Tracer

	// ConfigPath is the file upstream.watch reloads. Empty disables
	// watching.
	ConfigPath string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the HTTP server of the chat relay.
type Server struct {
	config       *config.Config
	deps         Deps
	logger       *slog.Logger
	httpServer   *http.Server
	ready        *handlers.ReadyHandler
	watcher      *config.FileWatcher
	shutdownOnce sync.Once
	mu           sync.RWMutex
	listener     net.Listener
	isRunning    bool
}

// NewServer creates a new relay server.
func NewServer(cfg *config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
		ready:  handlers.NewReadyHandler(deps.Upstream),
	}
}

// Start listens on proxy.listen_address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	proxyCfg := &s.config.Proxy
	s.httpServer = &http.Server{
		Addr:           proxyCfg.ListenAddress,
		Handler:        s.setupRoutes(),
		ReadTimeout:    proxyCfg.ReadTimeout,
		WriteTimeout:   proxyCfg.WriteTimeout,
		IdleTimeout:    proxyCfg.IdleTimeout,
		MaxHeaderBytes: proxyCfg.MaxHeaderBytes,
	}

	ln, err := net.Listen("tcp", proxyCfg.ListenAddress)
	if err != nil {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", proxyCfg.ListenAddress, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	if err := s.startWatcher(ctx); err != nil {
		s.logger.Error("config watcher disabled", "error", err)
	}

	errChan := make(chan error, 1)
	go func() {
		settings := s.deps.Upstream.Settings()
		s.logger.Info("starting relay server",
			"address", ln.Addr().String(),
			"upstream_url", settings.URL,
			"model", settings.Model,
		)

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		_ = s.Shutdown(context.Background())
		return err
	}
}

// Shutdown gracefully shuts down the server. Readiness fails first, then
// in-flight streams get up to proxy.shutdown_timeout to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.ready.SetDraining(true)

		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Warn("failed to stop config watcher", "error", err)
			}
		}

		timeout := s.config.Proxy.ShutdownTimeout
		s.logger.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("relay server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	chatHandler := handlers.NewChatHandler(
		s.deps.Upstream,
		s.deps.Metrics,
		s.config.Proxy.MaxBodyBytes,
		s.logger,
	)

	mux.Handle("/chat", chatHandler)
	mux.Handle("/health", handlers.NewHealthHandler())
	mux.Handle("/ready", s.ready)
	if s.deps.Metrics != nil {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.deps.Metrics.Handler())
	}

	var handler http.Handler = mux

	if s.deps.Tracer != nil {
		handler = s.deps.Tracer.Middleware(handler)
	}

	handler = middleware.CORSMiddleware(&s.config.Proxy.CORS)(handler)

	// Logging runs inside RequestID so every entry carries the ID.
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// startWatcher reloads the upstream settings whenever the config file
// changes. It is a no-op unless upstream.watch is set and a file is in use.
func (s *Server) startWatcher(ctx context.Context) error {
	if !s.config.Upstream.Watch || s.deps.ConfigPath == "" {
		return nil
	}

	w, err := config.NewFileWatcher(s.deps.ConfigPath, config.DefaultDebounceInterval, s.logger)
	if err != nil {
		return err
	}
	s.watcher = w

	go func() {
		if err := w.Watch(ctx, s.reloadUpstream); err != nil {
			s.logger.Error("config watcher exited", "error", err)
		}
	}()
	return nil
}

// reloadUpstream re-reads the config file and swaps the upstream settings.
// The previous settings stay in effect when the file is invalid.
func (s *Server) reloadUpstream() error {
	cfg, err := config.ReloadConfig(s.deps.ConfigPath)
	if err != nil {
		return err
	}
	settings, err := upstream.SettingsFromConfig(&cfg.Upstream)
	if err != nil {
		return err
	}

	prev := s.deps.Upstream.Settings()
	s.deps.Upstream.SetSettings(settings)

	s.logger.Info("upstream settings updated",
		"url", settings.URL,
		"model", settings.Model,
		"timeout", settings.Timeout.String(),
		"model_changed", prev.Model != settings.Model,
	)
	return nil
}

// Addr returns the bound listen address, or nil before Start is listening.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
