package cmd

import (
	"os"

	"rzdio/internal/app"

	"github.com/spf13/cobra"
)

var (
	// configPath selects a single configuration directory
	configPath string
	// debug enables verbose logging across the application
	debug bool
	// channelName overrides the configured channel identifier
	channelName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rzdio",
		Short: "Serve platform capabilities to a host runtime over a method channel",
		Long: `rzdio exposes a small set of platform capabilities, such as the OS
version, over a named method channel (default "rz_dio_client").

Hosts send a method name with optional arguments and receive either the
capability's value or a "not implemented" result for unknown methods.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown channel, bad arguments)
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Configuration directory (default: layered ~/.config/rzdio and ./.rzdio)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&channelName, "channel", "", "Channel name (default: from config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCallCmd())
	root.AddCommand(newCapabilitiesCmd())
	root.AddCommand(newConsoleCmd())
	root.AddCommand(newSelfUpdateCmd())

	return root
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "rzdio version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newApplication bootstraps the application from the global flags
func newApplication(cmd *cobra.Command) (*app.Application, error) {
	cfg := app.NewConfig(configPath, debug, rootCmd.Version)
	cfg.Channel = channelName
	cfg.LogOutput = cmd.ErrOrStderr()
	return app.NewApplication(cfg)
}
