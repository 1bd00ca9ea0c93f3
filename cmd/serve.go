package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rzdio/internal/config"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var overrides config.ServerConfig

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the channel to a host runtime over MCP",
		Long: `Registers the platform capabilities on the channel and serves it over the
Model Context Protocol.

Transports:
  stdio (default)  JSON-RPC on stdin/stdout; logs go to stderr
  sse              HTTP server-sent events on http://<host>:<port>/sse

Every capability is exposed as a tool of the same name. The invoke_method
tool accepts any method name and returns {"status":"notImplemented"} for
methods the channel does not provide.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return application.RunServe(ctx, overrides)
		},
	}

	serveCmd.Flags().StringVar(&overrides.Transport, "transport", "", "Transport to use (stdio, sse)")
	serveCmd.Flags().StringVar(&overrides.Host, "host", "", "Host to listen on for the sse transport")
	serveCmd.Flags().IntVar(&overrides.Port, "port", 0, "Port to listen on for the sse transport")

	return serveCmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
