package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/function"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	env     any
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithEnvironment sets the environment handed to environment-bound
// handlers when MCP clients call them.
func WithEnvironment(env any) ServerOption {
	return func(c *serverConfig) {
		c.env = env
	}
}

// NewServer creates an MCP server exposing every function in the
// registry. MCP clients can discover and call the functions; calls go
// through the registry's dispatcher, so argument validation and panic
// recovery apply as usual.
//
// Example:
//
//	registry := function.NewRegistry().Add(
//	    function.Func[WeatherArgs]("weather", "Get weather", weatherHandler),
//	)
//
//	s := mcp.NewServer(registry,
//	    mcp.WithName("my-functions"),
//	    mcp.WithVersion("1.0.0"),
//	)
//
//	server.ServeStdio(s)
func NewServer(registry *function.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "gpt-players-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, f := range registry.Functions() {
		s.AddTool(ToMCPTool(f), createMCPHandler(registry, cfg.env, f.Name))
	}

	return s
}

// createMCPHandler wraps registry dispatch as an MCP tool handler.
func createMCPHandler(registry *function.Registry, env any, name string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var argsJSON string
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		} else {
			argsJSON = "{}"
		}

		call := ai.FunctionCall{
			ID:        ai.GenerateCallID(),
			Name:      name,
			Arguments: argsJSON,
		}

		result := registry.Dispatch(ctx, env, call)
		return ToMCPCallToolResult(result), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as
// subprocesses.
func ServeStdio(registry *function.Registry, opts ...ServerOption) error {
	s := NewServer(registry, opts...)
	return server.ServeStdio(s)
}
