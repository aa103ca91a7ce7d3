// Package router defines the routing component contract consumed by the
// request adapter, together with the routing components shipped with
// routeshim.
package router

import (
	"context"
	"errors"

	"github.com/lambda-feedback/routeshim/message"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrHandlerPanic   = errors.New("handler panicked")
)

// Router maps a generic request to a generic response. Implementations
// must be safe for concurrent use.
type Router interface {
	Handle(ctx context.Context, req message.Request) (message.Response, error)
}

// Func is an adapter to allow the use of ordinary functions as routers.
type Func func(ctx context.Context, req message.Request) (message.Response, error)

// Handle calls f(ctx, req).
func (f Func) Handle(ctx context.Context, req message.Request) (message.Response, error) {
	return f(ctx, req)
}
