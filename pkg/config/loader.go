package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// ConfigError is a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	}
	return e.Path + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// LoadFromFile reads a YAML config file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewDefault()
	if err := mergeFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the configuration from defaults, the config file and the
// environment. An empty path falls back to LocalConfigFileName in the
// working directory when it exists. Flags are layered on top by the caller.
func Load(path string) (*Config, error) {
	cfg := NewDefault()

	if path == "" {
		if _, err := os.Stat(LocalConfigFileName); err == nil {
			path = LocalConfigFileName
		}
	}
	if path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if err := Parse(cfg, data); err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Path = filepath.Clean(path)
			return cerr
		}
		return err
	}
	return nil
}

// Parse decodes YAML data into cfg, overwriting only keys present in data
// and recording them as SourceFile.
func Parse(cfg *Config, data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return newConfigError(ErrInvalidYAML, err)
	}
	if err := root.Decode(cfg); err != nil {
		return newConfigError(ErrInvalidYAML, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	if len(root.Content) > 0 {
		recordSources(root.Content[0], "", cfg.Sources)
	}
	return nil
}

func newConfigError(sentinel, err error) *ConfigError {
	cerr := &ConfigError{Message: err.Error(), Err: errors.Join(sentinel, err)}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		cerr.Line, _ = strconv.Atoi(m[1])
	}
	return cerr
}

// recordSources walks a mapping node and marks every leaf key path.
func recordSources(node *yaml.Node, prefix string, sources map[string]string) {
	if node.Kind != yaml.MappingNode {
		if prefix != "" {
			sources[prefix] = SourceFile
		}
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		recordSources(node.Content[i+1], key, sources)
	}
}
