package standalone

import (
	"time"

	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/util/conf"
)

const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

type Config struct {
	// HttpConfig represents the configuration for the HTTP server.
	HttpConfig server.HttpConfig `conf:"http"`
}

var DefaultConfig = conf.MergeDefaults("http", conf.DefaultConfig{
	"host":                "localhost",
	"port":                8080,
	"h2c":                 false,
	"read_header_timeout": DefaultReadHeaderTimeout,
	"shutdown_timeout":    DefaultShutdownTimeout,
})
