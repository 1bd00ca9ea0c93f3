package server

import (
	"context"
	"fmt"

	"rzdio/internal/bridge"
	"rzdio/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// capabilityHandler returns the tool handler for a single capability
func (s *ChannelServer) capabilityHandler(method string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		call := bridge.NewCall(method, request.GetArguments())
		return s.dispatch(ctx, call), nil
	}
}

// handleInvoke handles the invoke_method tool
func (s *ChannelServer) handleInvoke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	method, ok := args["method"].(string)
	if !ok {
		return mcp.NewToolResultError("method parameter is required"), nil
	}

	var callArgs map[string]any
	if raw := args["arguments"]; raw != nil {
		callArgs, ok = raw.(map[string]any)
		if !ok {
			return mcp.NewToolResultError("arguments must be a JSON object"), nil
		}
	}

	return s.dispatch(ctx, bridge.NewCall(method, callArgs)), nil
}

func (s *ChannelServer) dispatch(ctx context.Context, call bridge.Call) *mcp.CallToolResult {
	data, res, err := s.registration.EncodeResult(s.registration.Invoke(ctx, call))
	logging.Debug("Server", "%s.%s -> %s", s.registration.Name(), call.Method, res.Kind())
	if err != nil {
		logging.Error("Server", err, "Failed to encode result of %s", call.Method)
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}

	if res.IsFailure() {
		return mcp.NewToolResultError(string(data))
	}
	return mcp.NewToolResultText(string(data))
}
