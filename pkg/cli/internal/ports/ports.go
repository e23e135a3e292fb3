// Package ports provides port availability checking.
package ports

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrInUse is returned by Check when the port cannot be bound.
var ErrInUse = errors.New("port already in use")

// IsAvailable checks if a port is available for binding on host.
func IsAvailable(host string, port int) bool {
	return Check(host, port) == nil
}

// Check binds and releases host:port. Port 0 always succeeds.
func Check(host string, port int) error {
	if port == 0 {
		return nil
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("%w: %d: %w", ErrInUse, port, err)
	}
	_ = ln.Close()
	return nil
}
