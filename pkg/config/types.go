package config

import "time"

// Config is the complete wretchkit configuration.
type Config struct {
	Mock      MockServerConfig `json:"mock" yaml:"mock"`
	Changelog ChangelogConfig  `json:"changelog" yaml:"changelog"`
	Log       LogConfig        `json:"log" yaml:"log"`

	// Sources tracks where each value came from, keyed by YAML path.
	Sources map[string]string `json:"-" yaml:"-"`
}

// MockServerConfig configures the mock HTTP server.
type MockServerConfig struct {
	// Host is the interface to bind. Empty binds all interfaces.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the mock server port. 0 picks a free port.
	Port int `json:"port" yaml:"port"`
	// AdminPort serves /health, /requests and /metrics. 0 disables it.
	AdminPort int `json:"adminPort,omitempty" yaml:"adminPort,omitempty"`
	// ReadTimeout is the HTTP read timeout.
	ReadTimeout time.Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	// WriteTimeout is the HTTP write timeout. Must exceed LongResultDelay.
	WriteTimeout time.Duration `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	// LongResultDelay is how long /longResult waits before answering.
	LongResultDelay time.Duration `json:"longResultDelay,omitempty" yaml:"longResultDelay,omitempty"`
	// MaxLogEntries bounds the request log.
	MaxLogEntries int `json:"maxLogEntries,omitempty" yaml:"maxLogEntries,omitempty"`
	// BasicAuth is the only credential pair /basicauth accepts.
	BasicAuth BasicAuthConfig `json:"basicAuth" yaml:"basicAuth"`
	// CORS configures cross-origin handling.
	CORS *CORSConfig `json:"cors,omitempty" yaml:"cors,omitempty"`
}

// BasicAuthConfig is a username/password pair.
type BasicAuthConfig struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	// Enabled enables CORS handling. When false, no CORS headers are added.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// AllowOrigins lists allowed origins. "*" allows any origin.
	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`
	// AllowMethods lists methods advertised on preflight responses.
	AllowMethods []string `json:"allowMethods,omitempty" yaml:"allowMethods,omitempty"`
	// AllowHeaders lists request headers a cross-origin client may send.
	AllowHeaders []string `json:"allowHeaders,omitempty" yaml:"allowHeaders,omitempty"`
	// ExposeHeaders lists response headers browsers may read.
	ExposeHeaders []string `json:"exposeHeaders,omitempty" yaml:"exposeHeaders,omitempty"`
	// AllowCredentials indicates whether credentials are allowed.
	AllowCredentials bool `json:"allowCredentials,omitempty" yaml:"allowCredentials,omitempty"`
	// MaxAge is the preflight cache duration in seconds. 0 omits the header.
	MaxAge int `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
}

// ChangelogConfig configures `wretchkit changelog`.
type ChangelogConfig struct {
	// TemplatesDir overrides the embedded templates. It must contain
	// template.tmpl, header.tmpl and commit.tmpl.
	TemplatesDir string `json:"templatesDir,omitempty" yaml:"templatesDir,omitempty"`
	// Title is passed to the templates as .Title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// File, when set, receives a copy of every log line.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// IsWildcard returns true if the CORS config allows all origins.
func (c *CORSConfig) IsWildcard() bool {
	if c == nil {
		return false
	}
	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// AllowOriginValue returns the Access-Control-Allow-Origin value for a
// request origin, or "" when the origin is not allowed.
func (c *CORSConfig) AllowOriginValue(requestOrigin string) string {
	if c == nil || !c.Enabled {
		return ""
	}
	if c.IsWildcard() {
		// "*" is invalid together with credentials; echo the origin instead.
		if c.AllowCredentials {
			return requestOrigin
		}
		return "*"
	}
	for _, allowed := range c.AllowOrigins {
		if allowed == requestOrigin {
			return requestOrigin
		}
	}
	return ""
}
