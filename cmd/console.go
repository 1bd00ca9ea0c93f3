package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Send calls to the channel interactively",
		Long: `Starts an interactive console bound to the channel.

Type a method name followed by optional JSON arguments and press enter:
  getPlatformVersion
  echo {"text": "hi"}

ctrl+y copies the last result, ctrl+l clears the history, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.RunConsole(commandContext(cmd))
		},
	}
}
