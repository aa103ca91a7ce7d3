package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Route is a net/http handler mounted on the mux ahead of the
// fallback router.
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}

type RouteResult struct {
	fx.Out

	Route *Route `group:"routes"`
}

func AsRoute(method, pattern string, handler http.Handler) RouteResult {
	return RouteResult{
		Route: &Route{
			Method:  method,
			Pattern: pattern,
			Handler: handler,
		},
	}
}

type MuxParams struct {
	fx.In

	// Fallback handles every request no route matches.
	Fallback Router `name:"fallback"`

	Routes []*Route `group:"routes"`

	Log *zap.Logger
}

// NewMux creates a chi based router that serves the given routes and
// delegates everything else to the fallback router.
func NewMux(params MuxParams) Router {
	mux := chi.NewRouter()

	for _, route := range params.Routes {
		params.Log.Debug("mounting route",
			zap.String("method", route.Method),
			zap.String("pattern", route.Pattern),
		)
		mux.Method(route.Method, route.Pattern, route.Handler)
	}

	fallback := ToHTTPHandler(params.Fallback)
	mux.NotFound(fallback.ServeHTTP)
	mux.MethodNotAllowed(fallback.ServeHTTP)

	return FromHTTPHandler(mux)
}

func NewHealthRoute(log *zap.Logger) RouteResult {
	return AsRoute(http.MethodGet, "/health", NewHealthHandler(log))
}

func NewMetricsRoute(registry *prometheus.Registry) RouteResult {
	return AsRoute(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	}))
}

// NewHealthHandler responds to liveness checks.
func NewHealthHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Debug("failed to write health response", zap.Error(err))
		}
	}
}
