package message

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrReadBody      = errors.New("failed to read body")
	ErrWriteBody     = errors.New("failed to write body")
	ErrInvalidStatus = errors.New("invalid status code")
)

// ReadRequest creates a generic request from a net/http request,
// reading the body once. The Host header, which net/http moves out of
// the header map, is put back.
func ReadRequest(r *http.Request) (Request, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrReadBody, err)
		}
		body = b
	}

	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	if r.Host != "" {
		header.Set("Host", r.Host)
	}

	return NewRequest(r.Method, uri, header, body), nil
}

// WriteResponse writes the status code, headers and body of a generic
// response to w. Nothing is written if the status code is invalid.
func WriteResponse(w http.ResponseWriter, res Response) error {
	// net/http panics on codes outside of this range
	if res.StatusCode < 100 || res.StatusCode > 999 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, res.StatusCode)
	}

	// Map response headers
	for k, v := range res.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	// Write response headers and status code
	w.WriteHeader(res.StatusCode)

	// Write response body
	if _, err := w.Write(res.Body); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteBody, err)
	}

	return nil
}
