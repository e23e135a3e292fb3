package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the mock server settings.
func (c *MockServerConfig) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("mock.port %d out of range", c.Port))
	}
	if c.AdminPort < 0 || c.AdminPort > 65535 {
		errs = append(errs, fmt.Errorf("mock.adminPort %d out of range", c.AdminPort))
	}
	if c.AdminPort != 0 && c.AdminPort == c.Port {
		errs = append(errs, fmt.Errorf("mock.adminPort must differ from mock.port (%d)", c.Port))
	}
	if c.LongResultDelay < 0 {
		errs = append(errs, errors.New("mock.longResultDelay must not be negative"))
	}
	if c.WriteTimeout > 0 && c.WriteTimeout <= c.LongResultDelay {
		errs = append(errs, fmt.Errorf("mock.writeTimeout (%s) must exceed mock.longResultDelay (%s)", c.WriteTimeout, c.LongResultDelay))
	}
	if c.BasicAuth.Username == "" {
		errs = append(errs, errors.New("mock.basicAuth.username is required"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	return c.Mock.Validate()
}
