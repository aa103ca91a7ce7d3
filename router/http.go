package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lambda-feedback/routeshim/message"
)

type errorSlotKey struct{}

// errorSlot carries a router error through a net/http handler chain,
// which has no way to return errors itself.
type errorSlot struct {
	err error
}

// FromHTTPHandler turns a net/http handler, e.g. a chi router, into a
// Router. The handler output is buffered and returned as a response.
func FromHTTPHandler(handler http.Handler) Router {
	return &httpRouter{handler: handler}
}

type httpRouter struct {
	handler http.Handler
}

func (h *httpRouter) Handle(ctx context.Context, req message.Request) (res message.Response, err error) {
	slot := &errorSlot{}
	ctx = context.WithValue(ctx, errorSlotKey{}, slot)

	r, err := http.NewRequestWithContext(ctx, req.Method, req.URI, bytes.NewReader(req.Body))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	r.RequestURI = req.URI
	r.Header = req.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if host := r.Header.Get("Host"); host != "" {
		r.Host = host
	}

	w := newResponseBuffer()

	defer func() {
		if p := recover(); p != nil {
			res, err = message.Response{}, fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()

	h.handler.ServeHTTP(w, r)

	if slot.err != nil {
		return message.Response{}, slot.err
	}

	return w.response(), nil
}

// ToHTTPHandler exposes a Router as a net/http handler, so it can be
// mounted on a net/http router. Router errors are handed back to an
// enclosing FromHTTPHandler; without one, a 500 is written.
func ToHTTPHandler(router Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := message.ReadRequest(r)
		if err != nil {
			reportError(w, r, err, false)
			return
		}

		res, err := router.Handle(r.Context(), req)
		if err != nil {
			reportError(w, r, err, false)
			return
		}

		if err := message.WriteResponse(w, res); err != nil {
			reportError(w, r, err, !errors.Is(err, message.ErrInvalidStatus))
		}
	})
}

func reportError(w http.ResponseWriter, r *http.Request, err error, started bool) {
	if slot, ok := r.Context().Value(errorSlotKey{}).(*errorSlot); ok {
		slot.err = err
		return
	}

	if !started {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// responseBuffer is an in-memory http.ResponseWriter.
type responseBuffer struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header)}
}

func (b *responseBuffer) Header() http.Header {
	return b.header
}

func (b *responseBuffer) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}

	b.wroteHeader = true
	b.status = status
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}

	return b.body.Write(p)
}

func (b *responseBuffer) response() message.Response {
	status := b.status
	if !b.wroteHeader {
		status = http.StatusOK
	}

	return message.NewResponse(status, b.header.Clone(), b.body.Bytes())
}
