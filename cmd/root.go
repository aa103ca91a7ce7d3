package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lambda-feedback/routeshim/config"
	"github.com/lambda-feedback/routeshim/internal/shell"
	"github.com/lambda-feedback/routeshim/util/conf"
	"github.com/lambda-feedback/routeshim/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "routeshim"
	appUsage = `Serve a routing layer through a managed http server runtime,
translating between the runtime's requests and generic messages.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Args:            true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "path to a JSON configuration file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.PathFlag{
				Name:    "env-file",
				Usage:   "path to a dotenv file with configuration env vars.",
				EnvVars: []string{"ENV_FILE"},
			},
			// router flags
			&cli.IntFlag{
				Name:     "status",
				Usage:    "the status code of the static response.",
				Category: "router",
				EnvVars:  []string{"ROUTER_STATUS"},
			},
			&cli.StringFlag{
				Name:     "content-type",
				Usage:    "the content type of the static response.",
				Category: "router",
				EnvVars:  []string{"ROUTER_CONTENT_TYPE"},
			},
			&cli.StringFlag{
				Name:     "body",
				Usage:    "the body of the static response.",
				Category: "router",
				EnvVars:  []string{"ROUTER_BODY"},
			},
			&cli.PathFlag{
				Name:     "response-file",
				Usage:    "path to a JSON response definition, overrides the other router flags.",
				Category: "router",
				EnvVars:  []string{"ROUTER_RESPONSE_FILE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config using defaults, files, env and flags
			cfg, err := parseConfig[config.Config](ctx, log, config.DefaultConfig, routerFlags)
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}

	// routerFlags maps router flag names to their config keys
	routerFlags = map[string]string{
		"status":        "router.status",
		"content-type":  "router.content_type",
		"body":          "router.body",
		"response-file": "router.response_file",
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the cli app and returns the process exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// the shell exits with the exit code of the received signal
	if err == nil || shell.IsExitError(err) {
		return shell.ExitCode(err)
	}

	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	return shell.ExitCode(err)
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level
	config.OutputPaths = []string{"stdout"}

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
