package cmd

import (
	"github.com/lambda-feedback/routeshim/app"
	"github.com/lambda-feedback/routeshim/app/standalone"
	"github.com/lambda-feedback/routeshim/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command binds the http server to the configured
	address and serves the routing layer until the process
	receives SIGINT or SIGTERM. In-flight requests are given
	the shutdown timeout to complete before the server stops.

	The command blocks until the server has been stopped.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and serve the router.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
			&cli.DurationFlag{
				Name:     "read-header-timeout",
				Usage:    "The time allowed to read request headers.",
				Value:    standalone.DefaultReadHeaderTimeout,
				Category: "http",
				EnvVars:  []string{"HTTP_READ_HEADER_TIMEOUT"},
			},
			&cli.DurationFlag{
				Name:     "shutdown-timeout",
				Usage:    "The time in-flight requests get to complete on shutdown.",
				Value:    standalone.DefaultShutdownTimeout,
				Category: "http",
				EnvVars:  []string{"HTTP_SHUTDOWN_TIMEOUT"},
			},
		},
	}

	// serveFlags maps serve flag names to their config keys
	serveFlags = map[string]string{
		"host":                "http.host",
		"port":                "http.port",
		"h2c":                 "http.h2c",
		"read-header-timeout": "http.read_header_timeout",
		"shutdown-timeout":    "http.shutdown_timeout",
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := parseConfig[standalone.Config](ctx, log, standalone.DefaultConfig, serveFlags)
	if err != nil {
		return err
	}

	log.Info("starting http server")

	return app.Run(ctx.Context, standalone.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
