package adapter

import (
	"net/http"

	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/message"
	"github.com/lambda-feedback/routeshim/router"
)

// Handler translates between net/http and the generic message types
// and delegates each request to the routing component.
type Handler struct {
	router router.Router
}

var _ server.RequestHandler = (*Handler)(nil)

func New(router router.Router) *Handler {
	return &Handler{router: router}
}

// HandleRequest converts the request, lets the router produce a response
// and writes it back. Router errors are returned unchanged and nothing is
// written, leaving recovery to the server's error handler.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) error {
	req, err := message.ReadRequest(r)
	if err != nil {
		return err
	}

	res, err := h.router.Handle(r.Context(), req)
	if err != nil {
		return err
	}

	return message.WriteResponse(w, res)
}
