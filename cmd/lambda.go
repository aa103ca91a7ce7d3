package cmd

import (
	"github.com/lambda-feedback/routeshim/app"
	"github.com/lambda-feedback/routeshim/app/lambda"
	"github.com/lambda-feedback/routeshim/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	lambdaCmdDescription = `The lambda command serves the router through the AWS Lambda
runtime interface client instead of an http server. Incoming
API Gateway or ALB events are translated into http requests,
handled like any other request and translated back.

The command will start the AWS runtime interface client and
blocks until the process receives SIGINT or SIGTERM.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				Value:    "API_GW_V2",
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}

	// lambdaFlags maps lambda flag names to their config keys
	lambdaFlags = map[string]string{
		"lambda-proxy-source": "lambda_proxy_source",
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := parseConfig[lambda.Config](ctx, log, lambda.DefaultConfig, lambdaFlags)
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, lambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}
