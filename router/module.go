package router

import (
	"go.uber.org/fx"
)

// Module provides the routing component. The static router configured
// by cfg is used as fallback behind the health and metrics routes.
func Module(cfg Config) fx.Option {
	return fx.Module(
		"router",
		// provide router config
		fx.Supply(cfg),
		// provide fallback router
		fx.Provide(fx.Annotate(
			NewStaticFromConfig,
			fx.As(new(Router)),
			fx.ResultTags(`name:"fallback"`),
		)),
		// provide routes
		fx.Provide(NewHealthRoute),
		fx.Provide(NewMetricsRoute),
		// provide mux
		fx.Provide(NewMux),
	)
}
