package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/getmockd/wretchkit/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput bool
	configPath string
	logLevel   logLevelFlag
	logFormat  logFormatFlag
	logFile    string

	buildInfo = BuildInfo{Version: "dev", Commit: "none", BuildDate: "unknown"}
)

// BuildInfo is injected by main from linker flags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wretchkit",
	Short: "wretchkit runs the wretch test mock server and writes emoji changelogs",
	Long: `wretchkit bundles the tooling around the wretch HTTP client.

The mock command serves the deterministic HTTP fixtures the client test suite
runs against. The changelog command turns emoji-prefixed git commits into a
grouped markdown changelog.

Configuration can be provided via flags, WRETCHKIT_* environment variables,
or a configuration file. By default, wretchkit reads .wretchkit.yaml from the
working directory when it exists.`,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints the error
}

// Execute runs the root command with the given build information.
func Execute(info BuildInfo) error {
	buildInfo = info
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ./"+config.LocalConfigFileName+")")
	pf.Var(enumflag.New(&logLevel, "level", logLevelIds, enumflag.EnumCaseInsensitive), "log-level", "Log level (debug, info, warn, error)")
	pf.Var(enumflag.New(&logFormat, "format", logFormatIds, enumflag.EnumCaseInsensitive), "log-format", "Log format (text, json, auto)")
	pf.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
}

// loadConfig layers the config file, the environment and the persistent
// flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	setFlag := func(name, key string, apply func()) {
		if flags.Changed(name) {
			apply()
			cfg.Sources[key] = config.SourceFlag
		}
	}
	setFlag("log-level", "log.level", func() { cfg.Log.Level = logLevel.String() })
	setFlag("log-format", "log.format", func() { cfg.Log.Format = logFormat.String() })
	setFlag("log-file", "log.file", func() { cfg.Log.File = logFile })
	return cfg, nil
}

// newLogger builds the operational logger. The returned closer releases the
// log file, if any.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	level := logging.ParseLevel(cfg.Level)
	log := logging.New(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.Format),
		Output: stderr,
	})
	if cfg.File == "" {
		return log, func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	fileHandler := logging.NewHandler(logging.Config{
		Level:  level,
		Format: logging.FormatJSON,
		Output: f,
	})
	return slog.New(logging.NewMultiHandler(log.Handler(), fileHandler)), f.Close, nil
}
