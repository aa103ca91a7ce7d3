package app

import (
	"github.com/lambda-feedback/routeshim/config"
	"github.com/lambda-feedback/routeshim/internal/adapter"
	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/internal/shell"
	"github.com/lambda-feedback/routeshim/router"
	"github.com/lambda-feedback/routeshim/util/conf"
	"github.com/lambda-feedback/routeshim/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(config)), nil
}

// SharedModule provides the components every host runtime needs:
// the routing component, the request adapter and the metrics registry.
func SharedModule(config config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide metrics registry
		fx.Provide(server.NewRegistry),
		// provide router
		router.Module(config.Router),
		// provide request adapter
		adapter.Module(),
	)
}
