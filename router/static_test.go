package router_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/routeshim/message"
	"github.com/lambda-feedback/routeshim/router"
	"github.com/lambda-feedback/routeshim/router/schema"
)

func TestStatic_DefaultConfig(t *testing.T) {
	r, err := router.NewStaticFromConfig(router.DefaultConfig)
	require.NoError(t, err)

	res, err := r.Handle(context.Background(), message.NewRequest(http.MethodGet, "/", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/plain", res.Header.Get("Content-Type"))
	assert.Equal(t, "Hello, world!", string(res.Body))
}

func TestStatic_ZeroStatusDefaultsToOK(t *testing.T) {
	r, err := router.NewStaticFromConfig(router.Config{Body: "x"})
	require.NoError(t, err)

	res, err := r.Handle(context.Background(), message.Request{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Header)
}

func TestStatic_ResponsesAreIndependent(t *testing.T) {
	r := router.NewStatic(message.Text(http.StatusOK, "abc"))

	first, err := r.Handle(context.Background(), message.Request{})
	require.NoError(t, err)

	first.Header.Set("X-Mutated", "yes")
	first.Body[0] = 'z'

	second, err := r.Handle(context.Background(), message.Request{})
	require.NoError(t, err)

	assert.Empty(t, second.Header.Get("X-Mutated"))
	assert.Equal(t, "abc", string(second.Body))
}

func TestStatic_ResponseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	err := os.WriteFile(path, []byte(`{
		"status": 201,
		"headers": {"Content-Type": ["application/json"], "X-Multi": ["a", "b"]},
		"body": "{\"created\":true}"
	}`), 0o600)
	require.NoError(t, err)

	r, err := router.NewStaticFromConfig(router.Config{
		Status:       http.StatusTeapot,
		ResponseFile: path,
	})
	require.NoError(t, err)

	res, err := r.Handle(context.Background(), message.Request{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, res.Header.Values("X-Multi"))
	assert.Equal(t, `{"created":true}`, string(res.Body))
}

func TestStatic_ResponseFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"status": 9000}`), 0o600))

	_, err := router.NewStaticFromConfig(router.Config{ResponseFile: path})

	assert.ErrorIs(t, err, schema.ErrSchemaValidation)
}

func TestStatic_ResponseFile_Missing(t *testing.T) {
	_, err := router.NewStaticFromConfig(router.Config{
		ResponseFile: filepath.Join(t.TempDir(), "missing.json"),
	})

	assert.ErrorIs(t, err, os.ErrNotExist)
}
