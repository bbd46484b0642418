package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

var generateMermaidTool = mcp.NewTool("generate_mermaid_flowchart",
	mcp.WithDescription("Generate a Mermaid flowchart from a natural-language process description. Returns Mermaid code starting with `flowchart TB` or `flowchart LR`."),
	promptArg(),
	directionArg(),
	complexityArg(),
)

var generateD2Tool = mcp.NewTool("generate_d2_flowchart",
	mcp.WithDescription("Generate a D2 diagram from a natural-language process description. Returns D2 code starting with `direction: down` or `direction: right`."),
	promptArg(),
	directionArg(),
	complexityArg(),
)

var symbolLegendTool = mcp.NewTool("get_symbol_legend",
	mcp.WithDescription("Get the flowchart symbol guide: which shape each symbol uses and its Mermaid syntax."),
)

func promptArg() mcp.ToolOption {
	return mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("The process to visualize"),
	)
}

func directionArg() mcp.ToolOption {
	return mcp.WithString("direction",
		mcp.Description("Layout direction (default Top-to-Bottom)"),
		mcp.Enum(string(flowchart.TopToBottom), string(flowchart.LeftToRight)),
		mcp.DefaultString(string(flowchart.TopToBottom)),
	)
}

func complexityArg() mcp.ToolOption {
	return mcp.WithString("complexity",
		mcp.Description("How many steps and branches to include (default Medium)"),
		mcp.Enum(string(flowchart.Simple), string(flowchart.Medium), string(flowchart.Detailed)),
		mcp.DefaultString(string(flowchart.Medium)),
	)
}
