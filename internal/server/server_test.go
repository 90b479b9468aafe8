package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	return port
}

func TestServer_RunAndShutdown(t *testing.T) {
	port := freePort(t)
	srv := New()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(config.ServerConfig{
			Port: port,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}),
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	assert.NoError(t, New().Shutdown(context.Background()))
}
