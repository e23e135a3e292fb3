package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getmockd/wretchkit/pkg/admin"
	"github.com/getmockd/wretchkit/pkg/cli/internal/ports"
	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/getmockd/wretchkit/pkg/mockserver"
	"github.com/spf13/cobra"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

var (
	mockPort            int
	mockHost            string
	mockAdminPort       int
	mockLongResultDelay time.Duration
	mockMaxLogEntries   int
)

// MockStartedOutput is printed once the mock server accepts connections.
type MockStartedOutput struct {
	URL      string `json:"url"`
	AdminURL string `json:"adminUrl,omitempty"`
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Start the wretch test mock server (foreground)",
	Long: `Start the HTTP mock server the wretch client test suite runs against.

The server answers a fixed route table: canned text, JSON and binary
payloads, body round trips, multipart decoding, content negotiation, basic
authentication, a slow endpoint and one route per HTTP error code.

With --admin-port the request log, health and Prometheus metrics are served
on a separate port. The server stops on SIGINT or SIGTERM.`,
	Example: `  # Start with defaults on port 9876
  wretchkit mock

  # Pick a free port and print the URL as JSON
  wretchkit mock --port 0 --json

  # Expose the admin API
  wretchkit mock --admin-port 9877`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyMockFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = closeLog() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runMock(ctx, &cfg.Mock, log, cmd.OutOrStdout(), nil)
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)

	f := mockCmd.Flags()
	f.IntVarP(&mockPort, "port", "p", config.DefaultPort, "Mock server port (0 picks a free port)")
	f.StringVar(&mockHost, "host", "", "Interface to bind (default: all interfaces)")
	f.IntVarP(&mockAdminPort, "admin-port", "a", 0, "Admin API port (0 = disabled)")
	f.DurationVar(&mockLongResultDelay, "long-result-delay", config.DefaultLongResultDelay, "How long /longResult waits before answering")
	f.IntVar(&mockMaxLogEntries, "max-log-entries", config.DefaultMaxLogEntries, "Maximum request log entries")
}

func applyMockFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	set := func(name, key string, apply func()) {
		if flags.Changed(name) {
			apply()
			cfg.Sources[key] = config.SourceFlag
		}
	}
	set("port", "mock.port", func() { cfg.Mock.Port = mockPort })
	set("host", "mock.host", func() { cfg.Mock.Host = mockHost })
	set("admin-port", "mock.adminPort", func() { cfg.Mock.AdminPort = mockAdminPort })
	set("long-result-delay", "mock.longResultDelay", func() { cfg.Mock.LongResultDelay = mockLongResultDelay })
	set("max-log-entries", "mock.maxLogEntries", func() { cfg.Mock.MaxLogEntries = mockMaxLogEntries })
}

// runMock serves until ctx is done. ready, when non-nil, is called with the
// startup output once both servers accept connections.
func runMock(ctx context.Context, cfg *config.MockServerConfig, log *slog.Logger, out io.Writer, ready func(MockStartedOutput)) error {
	for _, port := range []int{cfg.Port, cfg.AdminPort} {
		if err := ports.Check(cfg.Host, port); err != nil {
			return err
		}
	}

	srv := mockserver.New(cfg, mockserver.WithLogger(log.With("component", "mock")))
	if err := srv.Launch(ctx); err != nil {
		return err
	}

	var api *admin.API
	started := MockStartedOutput{URL: srv.URL()}
	if cfg.AdminPort > 0 {
		api = admin.NewAPI(cfg.AdminPort, srv,
			admin.WithLogger(log.With("component", "admin")),
			admin.WithHost(cfg.Host),
			admin.WithVersion(buildInfo.Version),
		)
		if err := api.Start(ctx); err != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return errors.Join(err, srv.Stop(stopCtx))
		}
		started.AdminURL = "http://" + api.Addr()
	}

	printResult(out, started, func() {
		fmt.Fprintf(out, "Mock server listening on %s\n", started.URL)
		if started.AdminURL != "" {
			fmt.Fprintf(out, "Admin API listening on %s\n", started.AdminURL)
		}
	})
	if ready != nil {
		ready(started)
	}

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if api != nil {
		if err := api.Stop(shutdownCtx); err != nil {
			log.Warn("admin API shutdown error", "error", err)
			errs = append(errs, err)
		}
	}
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("server shutdown error", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
