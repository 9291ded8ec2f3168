package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/function"
)

func TestToMCPTool(t *testing.T) {
	t.Run("converts function descriptor to MCP tool", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
		fn := ai.Function{
			Name:        "greet",
			Description: "Greet someone",
			Parameters:  schema,
		}

		mcpTool := ToMCPTool(fn)

		assert.Equal(t, "greet", mcpTool.Name)
		assert.Equal(t, "Greet someone", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("handles nil parameters", func(t *testing.T) {
		fn := ai.Function{Name: "simple", Description: "Simple function"}

		mcpTool := ToMCPTool(fn)

		assert.Equal(t, "simple", mcpTool.Name)
		assert.Equal(t, "Simple function", mcpTool.Description)
	})
}

func TestToMCPTools(t *testing.T) {
	functions := []ai.Function{
		{Name: "f1", Description: "First"},
		{Name: "f2", Description: "Second"},
	}

	mcpTools := ToMCPTools(functions)

	assert.Len(t, mcpTools, 2)
	assert.Equal(t, "f1", mcpTools[0].Name)
	assert.Equal(t, "f2", mcpTools[1].Name)
}

func TestFromMCPTool(t *testing.T) {
	t.Run("converts MCP tool with raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		mcpTool := mcp.NewToolWithRawSchema("weather", "Get weather", schema)

		fn := FromMCPTool(mcpTool)

		assert.Equal(t, "weather", fn.Name)
		assert.Equal(t, "Get weather", fn.Description)
		assert.JSONEq(t, `{"type":"object"}`, string(fn.Parameters))
	})

	t.Run("converts MCP tool with structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("search",
			mcp.WithDescription("Search the web"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		)

		fn := FromMCPTool(mcpTool)

		assert.Equal(t, "search", fn.Name)
		assert.Equal(t, "Search the web", fn.Description)
		assert.NotNil(t, fn.Parameters)
	})
}

func TestToMCPCallToolRequest(t *testing.T) {
	t.Run("parses JSON arguments", func(t *testing.T) {
		call := ai.FunctionCall{
			ID:        "call_123",
			Name:      "calculate",
			Arguments: `{"a": 10, "b": 5}`,
		}

		req := ToMCPCallToolRequest(call)

		assert.Equal(t, "calculate", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), args["a"])
		assert.Equal(t, float64(5), args["b"])
	})

	t.Run("handles empty arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.FunctionCall{Name: "noargs"})
		assert.Equal(t, "noargs", req.Params.Name)
		assert.Nil(t, req.Params.Arguments)
	})

	t.Run("keeps non-JSON arguments as a string", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.FunctionCall{Name: "raw", Arguments: "not json"})
		assert.Equal(t, "not json", req.Params.Arguments)
	})
}

func TestFromMCPCallToolResult(t *testing.T) {
	call := ai.FunctionCall{ID: "call_1", Name: "weather"}

	t.Run("extracts text content", func(t *testing.T) {
		result := mcp.NewToolResultText("sunny, 22C")

		fr := FromMCPCallToolResult(call, result)

		assert.Equal(t, "call_1", fr.CallID)
		assert.Equal(t, "weather", fr.Name)
		assert.Equal(t, "sunny, 22C", fr.Content)
		assert.False(t, fr.IsError)
	})

	t.Run("marks errors with an execution kind", func(t *testing.T) {
		result := mcp.NewToolResultError("service down")

		fr := FromMCPCallToolResult(call, result)

		assert.True(t, fr.IsError)
		assert.Equal(t, ai.ErrorKindExecution, fr.ErrorKind)
		assert.Equal(t, "service down", fr.Content)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		fr := FromMCPCallToolResult(call, nil)
		assert.True(t, fr.IsError)
	})
}

func TestToMCPCallToolResult(t *testing.T) {
	ok := ToMCPCallToolResult(ai.FunctionResult{Content: "fine"})
	assert.False(t, ok.IsError)

	bad := ToMCPCallToolResult(ai.FunctionResult{Content: "broken", IsError: true})
	assert.True(t, bad.IsError)
}

func TestNewServer(t *testing.T) {
	type echoArgs struct {
		Text string `json:"text" required:"true"`
	}
	registry := function.NewRegistry().Add(
		function.Func("echo", "Echo the input", func(ctx context.Context, args echoArgs) (any, error) {
			return args.Text, nil
		}),
	)

	s := NewServer(registry, WithName("test-server"), WithVersion("0.1.0"))
	assert.NotNil(t, s)
}
