package standalone_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/routeshim/app"
	"github.com/lambda-feedback/routeshim/app/standalone"
	"github.com/lambda-feedback/routeshim/config"
	"github.com/lambda-feedback/routeshim/internal/server"
	"github.com/lambda-feedback/routeshim/internal/shell"
	"github.com/lambda-feedback/routeshim/router"
)

func testConfig() (config.Config, standalone.Config) {
	return config.Config{
			LogLevel: "debug",
			Router:   router.DefaultConfig,
		}, standalone.Config{
			HttpConfig: server.HttpConfig{
				Host:            "127.0.0.1",
				Port:            0,
				ShutdownTimeout: 5 * time.Second,
			},
		}
}

// notifyServing sends the server once its start hook has run.
func notifyServing(ready chan<- *server.HttpServer) fx.Option {
	return fx.Invoke(func(srv *server.HttpServer, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				ready <- srv
				return nil
			},
		})
	})
}

func fetch(t *testing.T, url string) (*http.Response, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestModule_ServeAndStop(t *testing.T) {
	cfg, httpCfg := testConfig()

	s := shell.New(zaptest.NewLogger(t), app.SharedModule(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan *server.HttpServer, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.Run(ctx, standalone.Module(httpCfg), notifyServing(ready))
	}()

	var srv *server.HttpServer
	select {
	case srv = <-ready:
	case err := <-done:
		t.Fatalf("shell returned early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not start in time")
	}

	base := "http://" + srv.Addr().String()

	res, body := fetch(t, base+"/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/plain", res.Header.Get("Content-Type"))
	assert.Equal(t, "Hello, world!", body)

	res, body = fetch(t, base+"/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	res, body = fetch(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "routeshim_http_requests_total")

	cancel()

	select {
	case err := <-done:
		assert.Equal(t, 0, shell.ExitCode(err))
	case <-time.After(10 * time.Second):
		t.Fatal("shell did not stop in time")
	}

	assert.Equal(t, server.StateStopped, srv.State())
}

func TestModule_BindFailure(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg, httpCfg := testConfig()
	httpCfg.HttpConfig.Port = occupied.Addr().(*net.TCPAddr).Port

	s := shell.New(zaptest.NewLogger(t), app.SharedModule(cfg))

	err = s.Run(context.Background(), standalone.Module(httpCfg))

	var startErr *shell.StartError
	require.ErrorAs(t, err, &startErr)
	assert.ErrorIs(t, err, server.ErrBind)
}
