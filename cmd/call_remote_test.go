package cmd

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/platform"
	"rzdio/internal/server"
)

// serveTestChannel serves a channel over SSE and returns its endpoint
func serveTestChannel(t *testing.T) string {
	t.Helper()

	caps := platform.Capabilities(platform.Static{PlatformLabel: "macOS", PlatformVersion: "14.5"})
	d, err := bridge.NewDispatcher(caps...)
	require.NoError(t, err)
	reg, err := channel.NewRegistrar().Register(channel.DefaultName, d)
	require.NoError(t, err)

	ts := mcpserver.NewTestServer(server.New(reg, server.Options{Version: "test"}).MCPServer())
	t.Cleanup(ts.Close)
	return ts.URL + "/sse"
}

func TestCall_Endpoint(t *testing.T) {
	endpoint := serveTestChannel(t)

	stdout, _, err := runRoot(t, "", "call", "getPlatformVersion", "--endpoint", endpoint)
	require.NoError(t, err)
	assert.Equal(t, "macOS 14.5\n", stdout)

	stdout, _, err = runRoot(t, "", "call", "unknownMethod", "--endpoint", endpoint, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"notImplemented"}`, stdout)
}

func TestCall_EndpointUnreachable(t *testing.T) {
	_, _, err := runRoot(t, "", "call", "getPlatformVersion", "--endpoint", "http://127.0.0.1:1/sse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
