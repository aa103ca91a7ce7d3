package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide default error handler
		fx.Provide(fx.Annotate(server.NewDefaultErrorHandler, fx.As(new(server.ErrorHandler)))),
		// provide handler
		fx.Provide(NewLifecycleHandler),
		// invoke handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
