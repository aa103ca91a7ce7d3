package adapter

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/routeshim/internal/server"
)

func Module() fx.Option {
	return fx.Module(
		"adapter",
		// provide request adapter
		fx.Provide(fx.Annotate(New, fx.As(new(server.RequestHandler)))),
	)
}
