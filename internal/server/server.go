package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"rzdio/internal/channel"
	"rzdio/internal/config"
	"rzdio/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrAlreadyServing is returned when Serve is called on a running server
var ErrAlreadyServing = errors.New("channel server already serving")

// Options configures a ChannelServer
type Options struct {
	Transport string
	Host      string
	Port      int
	// Version is reported to MCP clients in the server info
	Version string
}

// OptionsFromConfig converts the server section of the configuration
func OptionsFromConfig(cfg config.ServerConfig, version string) Options {
	return Options{
		Transport: cfg.Transport,
		Host:      cfg.Host,
		Port:      cfg.Port,
		Version:   version,
	}
}

// ChannelServer serves one channel registration as an MCP server
type ChannelServer struct {
	registration *channel.Registration
	options      Options
	mcpServer    *server.MCPServer
	tools        []mcp.Tool

	mu      sync.Mutex
	serving bool
}

// New creates the MCP server for reg and registers one tool per capability
// plus the invoke_method tool.
func New(reg *channel.Registration, opts Options) *ChannelServer {
	if opts.Transport == "" {
		opts.Transport = config.TransportStdio
	}
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.Port == 0 {
		opts.Port = 8091
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &ChannelServer{
		registration: reg,
		options:      opts,
		mcpServer: server.NewMCPServer(
			reg.Name(),
			opts.Version,
			server.WithToolCapabilities(false),
		),
	}

	for _, info := range reg.Dispatcher().Capabilities() {
		if info.Name == InvokeToolName {
			logging.Warn("Server", "Capability %s shadows the generic tool and is only reachable through it", info.Name)
			continue
		}
		s.addTool(capabilityTool(info), s.capabilityHandler(info.Name))
	}
	s.addTool(invokeTool(reg.Name()), s.handleInvoke)

	return s
}

func (s *ChannelServer) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.tools = append(s.tools, tool)
	s.mcpServer.AddTool(tool, handler)
}

// MCPServer returns the underlying mcp-go server
func (s *ChannelServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tools returns the tools advertised by the server
func (s *ChannelServer) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Endpoint returns the SSE endpoint URL, or "stdio" for the stdio transport
func (s *ChannelServer) Endpoint() string {
	if s.options.Transport == config.TransportSSE {
		return fmt.Sprintf("http://%s:%d/sse", s.options.Host, s.options.Port)
	}
	return config.TransportStdio
}

// Serve runs the configured transport until ctx is cancelled or the
// transport fails.
func (s *ChannelServer) Serve(ctx context.Context) error {
	switch s.options.Transport {
	case config.TransportStdio:
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	case config.TransportSSE:
		return s.ServeSSE(ctx)
	default:
		return fmt.Errorf("unsupported transport: %s (supported: stdio, sse)", s.options.Transport)
	}
}

func (s *ChannelServer) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.serving {
		return ErrAlreadyServing
	}
	s.serving = true
	return nil
}

func (s *ChannelServer) end() {
	s.mu.Lock()
	s.serving = false
	s.mu.Unlock()
}

// ServeStdio serves JSON-RPC over the given reader and writer
func (s *ChannelServer) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	logging.Info("Server", "Serving channel %s on stdio", s.registration.Name())

	stdio := server.NewStdioServer(s.mcpServer)
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio transport error: %w", err)
	}
	return nil
}

// ServeSSE serves the channel over HTTP server-sent events
func (s *ChannelServer) ServeSSE(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	baseURL := fmt.Sprintf("http://%s:%d", s.options.Host, s.options.Port)
	sseServer := server.NewSSEServer(
		s.mcpServer,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	addr := fmt.Sprintf("%s:%d", s.options.Host, s.options.Port)
	logging.Info("Server", "Serving channel %s on %s", s.registration.Name(), s.Endpoint())

	errCh := make(chan error, 1)
	go func() {
		if err := sseServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSE server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("Server", "Stopping channel %s", s.registration.Name())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server", err, "Error shutting down SSE server")
		return err
	}
	return nil
}
