package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var ErrBind = errors.New("failed to bind")

type HttpServerParams struct {
	fx.In

	Context context.Context

	Config HttpConfig

	Handler      RequestHandler
	ErrorHandler ErrorHandler

	// Registry receives the request metrics. Metrics are
	// disabled if no registry is provided.
	Registry *prometheus.Registry `optional:"true"`

	Logger *zap.Logger
}

type HttpServer struct {
	address         string
	shutdownTimeout time.Duration
	server          *http.Server
	listener        net.Listener
	state           stateMachine
	done            chan struct{}
	serveErr        error
	log             *zap.Logger
}

// NewHandler wraps a request handler into a net/http handler that
// routes returned errors and panics to the error handler.
func NewHandler(handler RequestHandler, errorHandler ErrorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				errorHandler.HandleError(rw, r, fmt.Errorf("%w: %v", ErrHandlerPanic, p))
			}
		}()

		if err := handler.HandleRequest(rw, r); err != nil {
			errorHandler.HandleError(rw, r, err)
		}
	})
}

func NewHttpServer(params HttpServerParams) (*HttpServer, error) {
	handler := NewHandler(params.Handler, params.ErrorHandler)

	if params.Registry != nil {
		m, err := newMetrics(params.Registry)
		if err != nil {
			return nil, err
		}
		handler = m.instrument(handler)
	}

	handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)

	if params.Config.H2c {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: params.Config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ErrorLog:          zap.NewStdLog(params.Logger.Named("http")),
	}

	return &HttpServer{
		address:         params.Config.Address(),
		shutdownTimeout: params.Config.ShutdownTimeout,
		server:          server,
		done:            make(chan struct{}),
		log:             params.Logger,
	}, nil
}

func NewLifecycleServer(params HttpServerParams, lc fx.Lifecycle) (*HttpServer, error) {
	server, err := NewHttpServer(params)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := server.Bind(ctx); err != nil {
				return err
			}
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})

	return server, nil
}

// State returns the current lifecycle state.
func (s *HttpServer) State() State {
	return s.state.load()
}

// Addr returns the bound address, or nil if the server is not bound.
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Bind opens the listener. On failure no listener is left open and the
// server stays in StateCreated.
func (s *HttpServer) Bind(ctx context.Context) error {
	if s.State() != StateCreated {
		return fmt.Errorf("%w: bind in state %s", ErrInvalidTransition, s.State())
	}

	cfg := net.ListenConfig{}

	listener, err := cfg.Listen(ctx, "tcp", s.address)
	if err != nil {
		s.log.Error("failed to listen", zap.String("address", s.address), zap.Error(err))
		return fmt.Errorf("%w %s: %w", ErrBind, s.address, err)
	}

	s.listener = listener

	if err := s.state.transition(StateCreated, StateBound); err != nil {
		listener.Close()
		return err
	}

	s.log.Info("listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Start serves requests on the bound listener in a new goroutine.
func (s *HttpServer) Start() error {
	if err := s.state.transition(StateBound, StateServing); err != nil {
		return err
	}

	go s.serve()

	return nil
}

func (s *HttpServer) serve() {
	defer close(s.done)

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("failed to serve", zap.Error(err))
		s.serveErr = err
	}
}

// Shutdown stops accepting connections and waits for in-flight requests
// to complete. All teardown failures are combined into the returned error.
// Shutting down a bound server that never served only releases the
// listener, which rolls back a start that failed after Bind.
func (s *HttpServer) Shutdown(ctx context.Context) error {
	previous := s.State()

	switch previous {
	case StateStopped:
		return nil
	case StateBound, StateServing:
	default:
		return fmt.Errorf("%w: shutdown in state %s", ErrInvalidTransition, previous)
	}

	if err := s.state.transition(previous, StateStopping); err != nil {
		return err
	}

	s.log.Info("shutting down")

	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}

	var err error

	if shutdownErr := s.server.Shutdown(ctx); shutdownErr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to drain connections: %w", shutdownErr))
		// drain timed out, drop the remaining connections
		err = multierr.Append(err, s.server.Close())
	}

	// closing an already closed listener is not a failure
	if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
		err = multierr.Append(err, fmt.Errorf("failed to close listener: %w", closeErr))
	}

	// Serve returns as soon as the listener is closed
	if previous == StateServing {
		<-s.done
		err = multierr.Append(err, s.serveErr)
	}

	s.state.transition(StateStopping, StateStopped)

	if err != nil {
		s.log.Error("failed to shutdown", zap.Error(err))
		return err
	}

	s.log.Info("stopped")

	return nil
}
