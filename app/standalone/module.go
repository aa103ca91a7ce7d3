package standalone

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("server"),
		// provide server
		server.Module(config.HttpConfig),
	)
}
