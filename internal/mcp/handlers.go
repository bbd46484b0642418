package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/flowgen/internal/diagrams"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// handleGenerate returns the tool handler for grammar g.
func (s *Server) handleGenerate(g flowchart.Grammar) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := request.RequireString("prompt")
		if err != nil || strings.TrimSpace(prompt) == "" {
			return mcp.NewToolResultError("missing required parameter: prompt"), nil
		}

		req := flowchart.Request{
			Prompt:     prompt,
			Direction:  flowchart.Direction(request.GetString("direction", string(flowchart.TopToBottom))),
			Complexity: flowchart.Complexity(request.GetString("complexity", string(flowchart.Medium))),
		}

		res, err := s.gen.Generate(ctx, g, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
		}

		return mcp.NewToolResultText(res.Code), nil
	}
}

// handleSymbolLegend returns the symbol guide as a Markdown table.
func (s *Server) handleSymbolLegend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatLegend(diagrams.Legend())), nil
}

// formatLegend renders legend rows as a Markdown table followed by the tips.
func formatLegend(rows []diagrams.LegendRow) string {
	var sb strings.Builder
	sb.WriteString("| Symbol | Shape | Mermaid Syntax |\n")
	sb.WriteString("|---|---|---|\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | `%s` |\n", r.Symbol, r.Shape, strings.ReplaceAll(r.Syntax, "|", `\|`)))
	}
	sb.WriteString("\n")
	sb.WriteString(diagrams.LegendTips)
	return sb.String()
}
