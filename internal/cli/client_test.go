package cli

import (
	"context"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/config"
	"rzdio/internal/platform"
	"rzdio/internal/server"
)

// connectTestClient serves a channel on an httptest SSE server and connects a client to it
func connectTestClient(t *testing.T, extra ...bridge.Capability) *Client {
	t.Helper()

	caps := platform.Capabilities(platform.Static{PlatformLabel: "macOS", PlatformVersion: "14.5"})
	d, err := bridge.NewDispatcher(append(caps, extra...)...)
	require.NoError(t, err)
	reg, err := channel.NewRegistrar().Register(channel.DefaultName, d)
	require.NoError(t, err)

	ts := mcpserver.NewTestServer(server.New(reg, server.Options{Version: "test"}).MCPServer())
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL+"/sse", "test")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8091/sse", "1.0.0")

	assert.Equal(t, "http://localhost:8091/sse", c.Endpoint())
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.NoError(t, c.Close())
}

func TestEndpointFromConfig(t *testing.T) {
	assert.Equal(t, "http://localhost:8091/sse", EndpointFromConfig(config.ServerConfig{Port: 8091}))
	assert.Equal(t, "http://0.0.0.0:9000/sse", EndpointFromConfig(config.ServerConfig{Host: "0.0.0.0", Port: 9000}))
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient("http://localhost:8091/sse", "1.0.0")

	_, err := c.Invoke(context.Background(), bridge.NewCall("getPlatformVersion", nil))
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = c.Methods(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestClient_Invoke(t *testing.T) {
	c := connectTestClient(t, bridge.Capability{
		Name: "broken",
		Handler: bridge.HandlerFunc(func(context.Context, bridge.Call) (any, error) {
			return nil, bridge.NewHandlerFailure(bridge.CodeHandlerError, "boom")
		}),
	})
	ctx := context.Background()

	res, err := c.Invoke(ctx, bridge.NewCall(platform.MethodGetPlatformVersion, nil))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "macOS 14.5", res.Value())

	for _, method := range []string{"unknownMethod", ""} {
		res, err = c.Invoke(ctx, bridge.NewCall(method, nil))
		require.NoError(t, err)
		assert.True(t, res.IsNotImplemented(), "method %q", method)
	}

	res, err = c.Invoke(ctx, bridge.NewCall("broken", nil))
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.Equal(t, bridge.CodeHandlerError, res.Failure().Code)
	assert.Equal(t, "boom", res.Failure().Message)
}

func TestClient_Methods(t *testing.T) {
	c := connectTestClient(t)

	methods, err := c.Methods(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{platform.MethodGetPlatformInfo, platform.MethodGetPlatformVersion}, methods)
}

func TestClient_InvokeAfterConnectContextCancelled(t *testing.T) {
	caps := platform.Capabilities(platform.Static{PlatformLabel: "iOS", PlatformVersion: "17.0"})
	d, err := bridge.NewDispatcher(caps...)
	require.NoError(t, err)
	reg, err := channel.NewRegistrar().Register(channel.DefaultName, d)
	require.NoError(t, err)

	ts := mcpserver.NewTestServer(server.New(reg, server.Options{Version: "test"}).MCPServer())
	defer ts.Close()

	c := NewClient(ts.URL+"/sse", "test")
	defer c.Close()

	connectCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Connect(connectCtx))
	cancel()

	res, err := c.Invoke(context.Background(), bridge.NewCall(platform.MethodGetPlatformVersion, nil))
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "iOS 17.0", res.Value())
}
