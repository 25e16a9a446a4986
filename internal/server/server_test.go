package server

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoListenAddress)
}

func TestServer_ServesAndShutsDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv, err := NewServer(mux, config.Server{
		HTTPAddress:    "127.0.0.1:18099",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	// wait for the listener to come up
	var resp *http.Response
	require.Eventually(t, func() bool {
		var dialErr error
		resp, dialErr = http.Get("http://127.0.0.1:18099/ping")
		return dialErr == nil
	}, 2*time.Second, 20*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after Shutdown")
	}
}
