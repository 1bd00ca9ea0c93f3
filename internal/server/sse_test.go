package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/config"
	"rzdio/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServeSSE_Lifecycle(t *testing.T) {
	caps := platform.Capabilities(platform.Static{PlatformLabel: "macOS", PlatformVersion: "14.5"})
	d, err := bridge.NewDispatcher(caps...)
	require.NoError(t, err)
	reg, err := channel.NewRegistrar().Register(channel.DefaultName, d)
	require.NoError(t, err)

	port := freePort(t)
	s := New(reg, Options{Transport: config.TransportSSE, Host: "127.0.0.1", Port: port})
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/sse", port), s.Endpoint())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx) }()

	httpClient := &http.Client{Timeout: time.Second}
	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint(), nil)
		if err != nil {
			return false
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	assert.ErrorIs(t, s.Serve(ctx), ErrAlreadyServing)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestInvokeTool_UnencodableValueIsToolError(t *testing.T) {
	s := newTestServer(t, bridge.Capability{
		Name: "stream",
		Handler: bridge.HandlerFunc(func(context.Context, bridge.Call) (any, error) {
			return make(chan int), nil
		}),
	})

	res, err := s.handleInvoke(context.Background(), callRequest(InvokeToolName, map[string]any{"method": "stream"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	decoded, err := channel.JSONCodec{}.DecodeResult([]byte(resultText(t, res)))
	require.NoError(t, err)
	require.True(t, decoded.IsFailure())
	assert.Equal(t, bridge.CodeHandlerError, decoded.Failure().Code)
}
