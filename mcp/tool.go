// Package mcp provides MCP (Model Context Protocol) integration.
//
// The package offers bidirectional integration:
//
//   - Server: expose a [function.Registry] as an MCP server, allowing
//     MCP clients to discover and call the registered functions.
//   - Client: connect to MCP servers and use their tools through
//     [RemoteRegistry], whose functions can be offered to agents.
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/GPTPlayers/gpt-players"
)

// ToMCPTool converts a function descriptor to an MCP Tool. The
// Parameters JSON schema becomes the MCP Tool's RawInputSchema.
func ToMCPTool(f ai.Function) mcp.Tool {
	return mcp.NewToolWithRawSchema(f.Name, f.Description, f.Parameters)
}

// ToMCPTools converts a slice of function descriptors to MCP Tools.
func ToMCPTools(functions []ai.Function) []mcp.Tool {
	result := make([]mcp.Tool, len(functions))
	for i, f := range functions {
		result[i] = ToMCPTool(f)
	}
	return result
}

// FromMCPTool converts an MCP Tool to a function descriptor. It
// extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) ai.Function {
	var schema json.RawMessage

	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else {
		data, err := json.Marshal(t.InputSchema)
		if err == nil {
			schema = data
		}
	}

	return ai.Function{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromMCPTools converts a slice of MCP Tools to function descriptors.
func FromMCPTools(tools []mcp.Tool) []ai.Function {
	result := make([]ai.Function, len(tools))
	for i, t := range tools {
		result[i] = FromMCPTool(t)
	}
	return result
}

// ToMCPCallToolRequest converts a function call to an MCP
// CallToolRequest.
func ToMCPCallToolRequest(call ai.FunctionCall) mcp.CallToolRequest {
	var args any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			args = call.Arguments
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}
}

// FromMCPCallToolResult converts an MCP CallToolResult to a function
// result. The result content is extracted and concatenated as text.
func FromMCPCallToolResult(call ai.FunctionCall, result *mcp.CallToolResult) ai.FunctionResult {
	if result == nil {
		return ai.FunctionResult{
			CallID:    call.ID,
			Name:      call.Name,
			Content:   "",
			IsError:   true,
			ErrorKind: ai.ErrorKindExecution,
		}
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	fr := ai.FunctionResult{
		CallID:  call.ID,
		Name:    call.Name,
		Content: strings.Join(textParts, "\n"),
		IsError: result.IsError,
	}
	if fr.IsError {
		fr.ErrorKind = ai.ErrorKindExecution
	}
	return fr
}

// ToMCPCallToolResult converts a function result to an MCP
// CallToolResult.
func ToMCPCallToolResult(result ai.FunctionResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
