package server

import (
	"net"
	"strconv"
	"time"
)

type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`

	// ReadHeaderTimeout bounds the time to read request headers.
	// Zero means no timeout.
	ReadHeaderTimeout time.Duration `conf:"read_header_timeout"`

	// ShutdownTimeout bounds the time in-flight requests get to
	// complete once shutdown begins. Zero defers to the caller's
	// context.
	ShutdownTimeout time.Duration `conf:"shutdown_timeout"`
}

// Address returns the host:port the server binds to.
func (c HttpConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
