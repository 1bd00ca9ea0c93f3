package server

import (
	"rzdio/internal/bridge"

	"github.com/mark3labs/mcp-go/mcp"
)

// InvokeToolName is the generic tool that dispatches any method name
const InvokeToolName = "invoke_method"

func invokeTool(channelName string) mcp.Tool {
	return mcp.NewTool(InvokeToolName,
		mcp.WithDescription("Send a method call on the "+channelName+" channel. Unknown methods return a notImplemented result."),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("Method name, matched exactly"),
		),
		mcp.WithObject("arguments",
			mcp.Description("Optional method arguments"),
		),
	)
}

// capabilityTool builds the MCP tool for one capability from its declared parameters
func capabilityTool(info bridge.CapabilityInfo) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(info.Description)}

	for _, p := range info.Parameters {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		switch p.Type {
		case bridge.TypeString:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		case bridge.TypeNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case bridge.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		case bridge.TypeObject:
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		case bridge.TypeArray:
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		}
	}

	tool := mcp.NewTool(info.Name, opts...)

	// Untyped parameters have no helper in mcp-go; add them to the schema directly.
	for _, p := range info.Parameters {
		if p.Type != "" && p.Type != bridge.TypeAny {
			continue
		}
		tool.InputSchema.Properties[p.Name] = map[string]any{"description": p.Description}
		if p.Required {
			tool.InputSchema.Required = append(tool.InputSchema.Required, p.Name)
		}
	}

	return tool
}
