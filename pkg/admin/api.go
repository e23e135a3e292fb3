package admin

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

	"github.com/getmockd/wretchkit/pkg/logging"
	"github.com/getmockd/wretchkit/pkg/metrics"
	"github.com/getmockd/wretchkit/pkg/requestlog"
)

// ErrAlreadyRunning is returned by Start on an API that is serving.
var ErrAlreadyRunning = errors.New("admin API is already running")

// Source is the mock server the admin API reports on.
type Source interface {
	Requests() requestlog.Store
	Metrics() *metrics.MockMetrics
	IsRunning() bool
	URL() string
}

// API exposes the admin endpoints.
type API struct {
	source  Source
	host    string
	port    int
	version string
	log     *slog.Logger
	handler http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
	startTime  time.Time
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithHost sets the interface the API binds. Empty binds all interfaces.
func WithHost(host string) Option {
	return func(a *API) {
		a.host = host
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(a *API) {
		a.version = version
	}
}

// NewAPI creates an admin API for source on port. Port 0 picks a free port.
func NewAPI(port int, source Source, opts ...Option) *API {
	a := &API{
		source: source,
		port:   port,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)
	a.handler = mux
	return a
}

// Handler returns the API handler.
func (a *API) Handler() http.Handler {
	return a.handler
}

// Start binds the admin port and serves in the background.
func (a *API) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.httpServer != nil {
		return ErrAlreadyRunning
	}

	addr := net.JoinHostPort(a.host, strconv.Itoa(a.port))
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	done := make(chan struct{})
	a.httpServer = srv
	a.listener = ln
	a.done = done
	a.startTime = time.Now()

	a.log.Info("starting admin API", "addr", ln.Addr().String())
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("admin API error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the admin API. Stopping a stopped API is a no-op.
func (a *API) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.httpServer == nil {
		return nil
	}
	err := a.httpServer.Shutdown(ctx)
	if err != nil {
		_ = a.httpServer.Close()
	}
	<-a.done
	a.httpServer = nil
	a.listener = nil
	a.done = nil
	return err
}

// Addr returns the bound host:port, or "" when the API is not running.
func (a *API) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Uptime returns the API uptime in seconds.
func (a *API) Uptime() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.httpServer == nil {
		return 0
	}
	return int(time.Since(a.startTime).Seconds())
}
