package mockserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/getmockd/wretchkit/pkg/logging"
	"github.com/getmockd/wretchkit/pkg/metrics"
	"github.com/getmockd/wretchkit/pkg/requestlog"
)

// ErrAlreadyRunning is returned by Launch on a server that is serving.
var ErrAlreadyRunning = errors.New("mock server is already running")

// Server is the mock HTTP server.
type Server struct {
	cfg     *config.MockServerConfig
	log     *slog.Logger
	store   requestlog.Store
	metrics *metrics.MockMetrics

	handler http.Handler

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
	running    bool
	startTime  time.Time
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRequestLog replaces the in-memory request log.
func WithRequestLog(store requestlog.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMetrics sets the metric set requests are recorded on.
func WithMetrics(m *metrics.MockMetrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a Server and builds its route table. A nil cfg uses
// config.DefaultMockServerConfig.
func New(cfg *config.MockServerConfig, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultMockServerConfig()
	}

	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = requestlog.NewMemoryStore(cfg.MaxLogEntries)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewMockMetrics()
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var h http.Handler = mux
	h = newCORSMiddleware(h, cfg.CORS)
	h = timingAllowOrigin(h)
	h = recordMiddleware(h, s.log, s.metrics, s.store)
	s.handler = h

	return s
}

// Launch binds the configured host and port and starts serving in the
// background. It returns once the listener is bound.
func (s *Server) Launch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	done := make(chan struct{})

	s.httpServer = srv
	s.listener = ln
	s.done = done
	s.running = true
	s.startTime = time.Now()

	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("mock server error", "error", err)
		}
	}()

	s.log.Info("mock server listening", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx is done. Stopping a stopped server is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		// Deadline hit with requests still open; drop them.
		_ = s.httpServer.Close()
		err = fmt.Errorf("HTTP shutdown: %w", err)
	}
	<-s.done

	s.log.Info("mock server stopped", "addr", s.listener.Addr().String())
	s.httpServer = nil
	s.listener = nil
	s.done = nil
	s.running = false
	return err
}

// Addr returns the bound host:port, or "" when the server is not running.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL of the running server, or "" when it is not
// running. An unspecified bind address is reported as 127.0.0.1.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Handler returns the complete handler chain. It serves without Launch,
// which suits httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// IsRunning returns whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startTime)
}

// Requests returns the request log.
func (s *Server) Requests() requestlog.Store {
	return s.store
}

// Metrics returns the metric set requests are recorded on.
func (s *Server) Metrics() *metrics.MockMetrics {
	return s.metrics
}

// Config returns the server configuration.
func (s *Server) Config() *config.MockServerConfig {
	return s.cfg
}
