package message_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/routeshim/message"
)

func TestReadRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/a?b=c", strings.NewReader("payload"))
	r.Host = "api.example.com"
	r.Header.Add("X-Multi", "1")
	r.Header.Add("X-Multi", "2")

	req, err := message.ReadRequest(r)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/a?b=c", req.URI)
	assert.Equal(t, "api.example.com", req.Header.Get("Host"))
	assert.Equal(t, []string{"1", "2"}, req.Header.Values("x-multi"))
	assert.Equal(t, []byte("payload"), req.Body)
}

func TestReadRequest_ReadBodyError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", iotest.ErrReader(errors.New("connection reset")))

	_, err := message.ReadRequest(r)

	assert.ErrorIs(t, err, message.ErrReadBody)
}

func TestReadRequest_URIFallback(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "http://example.com/a/b?c=d", nil)
	require.NoError(t, err)

	req, err := message.ReadRequest(r)
	require.NoError(t, err)

	assert.Equal(t, "/a/b?c=d", req.URI)
	assert.Equal(t, "example.com", req.Header.Get("Host"))
	assert.Nil(t, req.Body)
}

func TestReadRequest_HeaderIsCopied(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Foo", "bar")

	req, err := message.ReadRequest(r)
	require.NoError(t, err)

	req.Header.Set("X-Foo", "baz")

	assert.Equal(t, "bar", r.Header.Get("X-Foo"))
	assert.Empty(t, r.Header.Get("Host"))
}

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()

	res := message.NewResponse(http.StatusCreated, http.Header{
		"Set-Cookie": []string{"a=1", "b=2"},
	}, []byte("created"))

	require.NoError(t, message.WriteResponse(w, res))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"a=1", "b=2"}, w.Header().Values("Set-Cookie"))
	assert.Equal(t, "created", w.Body.String())
}

func TestWriteResponse_InvalidStatus(t *testing.T) {
	for _, status := range []int{0, 99, 1000} {
		w := httptest.NewRecorder()

		res := message.NewResponse(status, http.Header{"X-Foo": []string{"bar"}}, []byte("x"))

		err := message.WriteResponse(w, res)

		assert.ErrorIs(t, err, message.ErrInvalidStatus)
		assert.Empty(t, w.Header())
		assert.Zero(t, w.Body.Len())
	}
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteResponse_WriteError(t *testing.T) {
	w := failingWriter{httptest.NewRecorder()}

	err := message.WriteResponse(w, message.Text(http.StatusOK, "hello"))

	assert.ErrorIs(t, err, message.ErrWriteBody)
	assert.Equal(t, http.StatusOK, w.Code)
}
