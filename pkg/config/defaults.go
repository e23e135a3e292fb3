package config

import "time"

// Default values.
const (
	DefaultPort            = 9876
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultLongResultDelay = time.Second
	DefaultMaxLogEntries   = 1000
	DefaultBasicAuthUser   = "wretch"
	DefaultBasicAuthPass   = "rocks"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultChangelogTitle  = "Changelog"
	LocalConfigFileName    = ".wretchkit.yaml"
)

// DefaultCORSConfig allows any origin and the custom headers the client
// test suite sends.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		Enabled:      true,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization",
			"X-Custom-Header",
			"X-Custom-Header-2",
			"X-Custom-Header-3",
			"X-Custom-Header-4",
		},
		ExposeHeaders: []string{"Allow", "Timing-Allow-Origin"},
	}
}

// DefaultMockServerConfig returns the mock server defaults.
func DefaultMockServerConfig() *MockServerConfig {
	return &MockServerConfig{
		Port:            DefaultPort,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		LongResultDelay: DefaultLongResultDelay,
		MaxLogEntries:   DefaultMaxLogEntries,
		BasicAuth: BasicAuthConfig{
			Username: DefaultBasicAuthUser,
			Password: DefaultBasicAuthPass,
		},
		CORS: DefaultCORSConfig(),
	}
}

// NewDefault returns a Config with every value at its default.
func NewDefault() *Config {
	cfg := &Config{
		Mock: *DefaultMockServerConfig(),
		Changelog: ChangelogConfig{
			Title: DefaultChangelogTitle,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Sources: make(map[string]string),
	}
	for _, key := range []string{
		"mock.port", "mock.readTimeout", "mock.writeTimeout", "mock.longResultDelay",
		"mock.maxLogEntries", "mock.basicAuth.username", "mock.basicAuth.password",
		"changelog.title", "log.level", "log.format",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
