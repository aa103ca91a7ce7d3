package server

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

var ErrHandlerPanic = errors.New("request handler panicked")

// RequestHandler handles a single request. A returned error is passed to
// the server's ErrorHandler.
type RequestHandler interface {
	HandleRequest(w http.ResponseWriter, r *http.Request) error
}

// ErrorHandler turns a request handling failure into a response.
type ErrorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// DefaultErrorHandler logs the error, reports it to Sentry and responds
// with 500 Internal Server Error, unless the response was already started.
type DefaultErrorHandler struct {
	log *zap.Logger
}

var _ ErrorHandler = (*DefaultErrorHandler)(nil)

func NewDefaultErrorHandler(log *zap.Logger) *DefaultErrorHandler {
	return &DefaultErrorHandler{log: log}
}

func (h *DefaultErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("failed to handle request",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err),
	)

	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)

	if rw, ok := w.(*responseWriter); ok && rw.written {
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// responseWriter records whether the response has been started.
type responseWriter struct {
	http.ResponseWriter
	written bool
}

func (w *responseWriter) WriteHeader(status int) {
	// set after the call, net/http panics on invalid codes
	// without writing anything
	w.ResponseWriter.WriteHeader(status)
	w.written = true
}

func (w *responseWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.written = true
	return n, err
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
