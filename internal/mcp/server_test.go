package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/llm/llmtest"
)

// recordingGenerator implements Generator for testing.
type recordingGenerator struct {
	code string
	err  error
	got  []flowchart.Request
}

func (g *recordingGenerator) Generate(_ context.Context, grammar flowchart.Grammar, req flowchart.Request) (*flowchart.Result, error) {
	g.got = append(g.got, req)
	if g.err != nil {
		return nil, g.err
	}
	return &flowchart.Result{Grammar: grammar, Request: req, Code: g.code}, nil
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"mermaid", generateMermaidTool, "generate_mermaid_flowchart"},
		{"d2", generateD2Tool, "generate_d2_flowchart"},
		{"legend", symbolLegendTool, "get_symbol_legend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}

	for _, tool := range []mcp.Tool{generateMermaidTool, generateD2Tool} {
		if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "prompt" {
			t.Errorf("%s: required = %v, want [prompt]", tool.Name, tool.InputSchema.Required)
		}
		for _, prop := range []string{"prompt", "direction", "complexity"} {
			if _, ok := tool.InputSchema.Properties[prop]; !ok {
				t.Errorf("%s: missing property %q", tool.Name, prop)
			}
		}
	}
}

func TestNewServer(t *testing.T) {
	gen := &recordingGenerator{}
	srv := NewServer(gen)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.gen != gen {
		t.Error("generator not set correctly")
	}
}

func TestHandleGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		gen := &recordingGenerator{code: "flowchart TB\na[A] --> b[B]"}
		srv := NewServer(gen)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"prompt": "Process for approving a loan application"}

		result, err := srv.handleGenerate(flowchart.GrammarMermaid)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if got := textOf(t, result); got != gen.code {
			t.Errorf("code = %q, want %q", got, gen.code)
		}
		if gen.got[0].Direction != flowchart.TopToBottom || gen.got[0].Complexity != flowchart.Medium {
			t.Errorf("defaults not applied: %+v", gen.got[0])
		}
	})

	t.Run("explicit arguments", func(t *testing.T) {
		gen := &recordingGenerator{code: "direction: right\na -> b"}
		srv := NewServer(gen)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"prompt":     "x",
			"direction":  "Left-to-Right",
			"complexity": "Detailed",
		}

		result, err := srv.handleGenerate(flowchart.GrammarD2)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if gen.got[0].Direction != flowchart.LeftToRight || gen.got[0].Complexity != flowchart.Detailed {
			t.Errorf("arguments not passed: %+v", gen.got[0])
		}
	})

	t.Run("missing prompt", func(t *testing.T) {
		gen := &recordingGenerator{}
		srv := NewServer(gen)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGenerate(flowchart.GrammarMermaid)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing prompt")
		}
		if len(gen.got) != 0 {
			t.Error("generator should not be called")
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		srv := NewServer(&recordingGenerator{err: flowchart.ErrInvalidNodeShapes})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"prompt": "x"}

		result, err := srv.handleGenerate(flowchart.GrammarMermaid)(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected tool error")
		}
		if got := textOf(t, result); !strings.Contains(got, flowchart.ErrInvalidNodeShapes.Error()) {
			t.Errorf("unexpected error text %q", got)
		}
	})
}

func TestHandleGenerateWithRealGenerator(t *testing.T) {
	mock := llmtest.NewMockProvider("```mermaid\nstart([Start]) --> done([Done])\n```")
	srv := NewServer(flowchart.NewGenerator(mock, flowchart.Settings{Model: "gpt-3.5-turbo"}, nil))
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"prompt": "x", "direction": "Left-to-Right"}

	result, err := srv.handleGenerate(flowchart.GrammarMermaid)(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if got := textOf(t, result); got != "flowchart LR\nstart([Start]) --> done([Done])" {
		t.Errorf("unexpected code %q", got)
	}
}

func TestHandleGenerateTimeout(t *testing.T) {
	srv := NewServer(&recordingGenerator{err: flowchart.ErrTimeout})
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"prompt": "x"}

	result, _ := srv.handleGenerate(flowchart.GrammarD2)(context.Background(), req)
	if !result.IsError {
		t.Error("expected tool error on timeout")
	}
}

func TestHandleSymbolLegend(t *testing.T) {
	srv := NewServer(&recordingGenerator{})
	result, err := srv.handleSymbolLegend(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := textOf(t, result)
	for _, want := range []string{"| Symbol | Shape | Mermaid Syntax |", "Diamond", "`-->\\|Yes/No\\|`", "Node IDs"} {
		if !strings.Contains(text, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}
