package config

import (
	"github.com/lambda-feedback/routeshim/router"
	"github.com/lambda-feedback/routeshim/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Router is the configuration of the static fallback router
	Router router.Config `conf:"router"`
}

var DefaultConfig = conf.MergeDefaults("router", map[string]any{
	"status":       router.DefaultConfig.Status,
	"content_type": router.DefaultConfig.ContentType,
	"body":         router.DefaultConfig.Body,
})
