// Package message contains the generic, runtime-independent representation
// of an HTTP request and response. Values are owned by a single request
// handling invocation and are never shared between requests.
package message

import (
	"net/http"
	"net/url"
)

// Request represents an incoming request.
type Request struct {
	// Method is the HTTP method, e.g. GET or POST.
	Method string

	// URI is the request target as sent by the client,
	// including the query string.
	URI string

	// Header holds the request headers. Keys are canonicalized,
	// so lookups are case-insensitive.
	Header http.Header

	// Body is the fully read request body.
	Body []byte
}

// Response represents an outgoing response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewRequest creates a new request. A nil header is replaced by an
// empty one, so callers can always use Header.Get and Header.Add.
func NewRequest(method, uri string, header http.Header, body []byte) Request {
	if header == nil {
		header = make(http.Header)
	}

	return Request{
		Method: method,
		URI:    uri,
		Header: header,
		Body:   body,
	}
}

// Path returns the path component of the request URI, or the raw
// URI if it cannot be parsed.
func (r Request) Path() string {
	u, err := url.ParseRequestURI(r.URI)
	if err != nil {
		return r.URI
	}

	return u.Path
}

// Query returns the parsed query string of the request URI.
func (r Request) Query() url.Values {
	u, err := url.ParseRequestURI(r.URI)
	if err != nil {
		return url.Values{}
	}

	return u.Query()
}

// NewResponse creates a new response.
func NewResponse(status int, header http.Header, body []byte) Response {
	if header == nil {
		header = make(http.Header)
	}

	return Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
	}
}

// Text creates a plain text response.
func Text(status int, body string) Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/plain; charset=utf-8")

	return NewResponse(status, header, []byte(body))
}
