package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/config"
	"rzdio/internal/server"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrNotConnected is returned when a call is made before Connect
var ErrNotConnected = errors.New("client not connected")

const defaultTimeout = 30 * time.Second

// Client calls methods on a channel served by `rzdio serve --transport sse`
type Client struct {
	endpoint string
	client   client.MCPClient
	cancel   context.CancelFunc
	codec    channel.Codec
	timeout  time.Duration
	version  string
}

// NewClient creates a client for the SSE endpoint, e.g. http://localhost:8091/sse
func NewClient(endpoint, version string) *Client {
	return &Client{
		endpoint: endpoint,
		codec:    channel.JSONCodec{},
		timeout:  defaultTimeout,
		version:  version,
	}
}

// EndpointFromConfig returns the SSE endpoint of a server running with sc
func EndpointFromConfig(sc config.ServerConfig) string {
	host := sc.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d/sse", host, sc.Port)
}

// Endpoint returns the endpoint the client connects to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Connect starts the SSE transport and performs the MCP handshake. ctx
// bounds the handshake only; the stream stays open until Close.
func (c *Client) Connect(ctx context.Context) error {
	sseClient, err := client.NewSSEMCPClient(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to create sse client: %w", err)
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if err := sseClient.Start(streamCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start sse client: %w", err)
	}
	c.client = sseClient
	c.cancel = cancel

	if err := c.initialize(ctx); err != nil {
		c.Close()
		return fmt.Errorf("initialization failed: %w", err)
	}
	return nil
}

// Invoke sends call through the invoke_method tool and decodes the result
// envelope. Method-level outcomes, including failures, are returned as a
// Result; the error is reserved for transport and decoding problems.
func (c *Client) Invoke(ctx context.Context, call bridge.Call) (bridge.Result, error) {
	args := map[string]any{"method": call.Method}
	if callArgs := call.Arguments(); callArgs != nil {
		args["arguments"] = callArgs
	}

	text, isError, err := c.callTool(ctx, server.InvokeToolName, args)
	if err != nil {
		return bridge.Result{}, err
	}

	res, err := c.codec.DecodeResult([]byte(text))
	if err != nil {
		if isError {
			return bridge.Result{}, fmt.Errorf("tool error: %s", text)
		}
		return bridge.Result{}, err
	}
	return res, nil
}

// Methods lists the capability tools served on the channel
func (c *Client) Methods(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, ErrNotConnected
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	var methods []string
	for _, tool := range result.Tools {
		if tool.Name == server.InvokeToolName {
			continue
		}
		methods = append(methods, tool.Name)
	}
	return methods, nil
}

// Close closes the connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.cancel()
	c.client = nil
	c.cancel = nil
	return err
}

func (c *Client) callTool(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	if c.client == nil {
		return "", false, ErrNotConnected
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return "", false, fmt.Errorf("tool call failed: %w", err)
	}

	var output []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			output = append(output, textContent.Text)
		}
	}
	return strings.Join(output, "\n"), result.IsError, nil
}

// initialize performs the MCP protocol handshake
func (c *Client) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "rzdio-cli",
		Version: c.version,
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}
