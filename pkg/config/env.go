package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvPort            = "WRETCHKIT_PORT"
	EnvHost            = "WRETCHKIT_HOST"
	EnvAdminPort       = "WRETCHKIT_ADMIN_PORT"
	EnvLongResultDelay = "WRETCHKIT_LONG_RESULT_DELAY"
	EnvLogLevel        = "WRETCHKIT_LOG_LEVEL"
	EnvLogFormat       = "WRETCHKIT_LOG_FORMAT"
	EnvTemplatesDir    = "WRETCHKIT_TEMPLATES_DIR"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with the WRETCHKIT_* variables that are set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setInt := func(env, key string, dst *int) error {
		v, ok := lookup(env)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", env, v)
		}
		*dst = n
		cfg.Sources[key] = SourceEnv
		return nil
	}
	setString := func(env, key string, dst *string) {
		if v, ok := lookup(env); ok && v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}

	if err := setInt(EnvPort, "mock.port", &cfg.Mock.Port); err != nil {
		return err
	}
	if err := setInt(EnvAdminPort, "mock.adminPort", &cfg.Mock.AdminPort); err != nil {
		return err
	}
	if v, ok := lookup(EnvLongResultDelay); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q", EnvLongResultDelay, v)
		}
		cfg.Mock.LongResultDelay = d
		cfg.Sources["mock.longResultDelay"] = SourceEnv
	}
	setString(EnvHost, "mock.host", &cfg.Mock.Host)
	setString(EnvLogLevel, "log.level", &cfg.Log.Level)
	setString(EnvLogFormat, "log.format", &cfg.Log.Format)
	setString(EnvTemplatesDir, "changelog.templatesDir", &cfg.Changelog.TemplatesDir)
	return nil
}
