package message_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambda-feedback/routeshim/message"
)

func TestNewRequest_NilHeader(t *testing.T) {
	req := message.NewRequest(http.MethodGet, "/", nil, nil)

	assert.NotNil(t, req.Header)
	assert.Equal(t, "", req.Header.Get("Content-Type"))
}

func TestRequest_Path(t *testing.T) {
	tests := map[string]string{
		"/":                "/",
		"/foo/bar":         "/foo/bar",
		"/foo?x=1&y=2":     "/foo",
		"http://a.b/c?d=e": "/c",
	}

	for uri, path := range tests {
		t.Run(uri, func(t *testing.T) {
			req := message.NewRequest(http.MethodGet, uri, nil, nil)
			assert.Equal(t, path, req.Path())
		})
	}
}

func TestRequest_Query(t *testing.T) {
	req := message.NewRequest(http.MethodGet, "/search?q=go&q=zap&page=2", nil, nil)

	query := req.Query()

	assert.Equal(t, []string{"go", "zap"}, query["q"])
	assert.Equal(t, "2", query.Get("page"))
}

func TestRequest_Query_Invalid(t *testing.T) {
	req := message.NewRequest(http.MethodGet, "not a uri", nil, nil)

	assert.Empty(t, req.Query())
	assert.Equal(t, "not a uri", req.Path())
}

func TestText(t *testing.T) {
	res := message.Text(http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", res.Header.Get("content-type"))
	assert.Equal(t, []byte("short and stout"), res.Body)
}
