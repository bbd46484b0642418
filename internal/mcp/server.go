package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Generator produces a validated flowchart for one grammar.
type Generator interface {
	Generate(ctx context.Context, grammar flowchart.Grammar, req flowchart.Request) (*flowchart.Result, error)
}

// Server wraps an MCP server that exposes flowchart generation tools.
type Server struct {
	gen Generator
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by gen.
func NewServer(gen Generator) *Server {
	s := &Server{gen: gen}

	s.mcp = server.NewMCPServer(
		"flowgen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateMermaidTool, s.handleGenerate(flowchart.GrammarMermaid))
	s.mcp.AddTool(generateD2Tool, s.handleGenerate(flowchart.GrammarD2))
	s.mcp.AddTool(symbolLegendTool, s.handleSymbolLegend)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
