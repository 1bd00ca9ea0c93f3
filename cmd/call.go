package cmd

import (
	"encoding/json"
	"fmt"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/cli"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// For mocking in tests
var writeClipboard = clipboard.WriteAll

type callOptions struct {
	args       string
	jsonOutput bool
	copy       bool
	endpoint   string
}

func newCallCmd() *cobra.Command {
	opts := &callOptions{}

	callCmd := &cobra.Command{
		Use:   "call <method>",
		Short: "Send a single method call on the channel",
		Long: `Sends one method call on the channel and prints the result.

Method names are matched exactly. Unknown names, including the empty
name (call ""), produce a "not implemented" result, which is not an error.
A handler failure exits non-zero.

Examples:
  rzdio call getPlatformVersion
  rzdio call getPlatformInfo --json
  rzdio call echo --args '{"text":"hi"}'
  rzdio call getPlatformVersion --endpoint http://localhost:8091/sse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, args[0], opts)
		},
	}

	callCmd.Flags().StringVar(&opts.args, "args", "", "Method arguments as a JSON object")
	callCmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the encoded result envelope")
	callCmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the printed result to the clipboard")
	callCmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Call a channel served over sse at this URL instead of in-process")

	return callCmd
}

func runCall(cmd *cobra.Command, method string, opts *callOptions) error {
	var callArgs map[string]any
	if opts.args != "" {
		if err := json.Unmarshal([]byte(opts.args), &callArgs); err != nil {
			return fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}

	call := bridge.NewCall(method, callArgs)
	var (
		res bridge.Result
		err error
	)
	if opts.endpoint != "" {
		res, err = callRemote(cmd, opts.endpoint, call)
	} else {
		res, err = callLocal(cmd, call)
	}
	if err != nil {
		return err
	}

	var output string
	if opts.jsonOutput {
		data, err := channel.JSONCodec{}.EncodeResult(res)
		if err != nil {
			return err
		}
		output = string(data)
	} else {
		output, err = formatResult(res)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)

	if opts.copy {
		if err := writeClipboard(output); err != nil {
			return fmt.Errorf("failed to copy result to clipboard: %w", err)
		}
	}

	if f := res.Failure(); f != nil {
		return f
	}
	return nil
}

func callLocal(cmd *cobra.Command, call bridge.Call) (bridge.Result, error) {
	application, err := newApplication(cmd)
	if err != nil {
		return bridge.Result{}, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Call(commandContext(cmd), call), nil
}

func callRemote(cmd *cobra.Command, endpoint string, call bridge.Call) (bridge.Result, error) {
	ctx := commandContext(cmd)

	client := cli.NewClient(endpoint, rootCmd.Version)
	if err := client.Connect(ctx); err != nil {
		return bridge.Result{}, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	defer client.Close()

	return client.Invoke(ctx, call)
}

func formatResult(res bridge.Result) (string, error) {
	switch res.Kind() {
	case bridge.ResultSuccess:
		if s, ok := res.Value().(string); ok {
			return s, nil
		}
		data, err := json.MarshalIndent(res.Value(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to format result: %w", err)
		}
		return string(data), nil
	case bridge.ResultNotImplemented:
		return "not implemented", nil
	case bridge.ResultFailure:
		f := res.Failure()
		return fmt.Sprintf("error [%s]: %s", f.Code, f.Message), nil
	default:
		return "", fmt.Errorf("call produced no result")
	}
}
