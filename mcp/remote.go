package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/GPTPlayers/gpt-players"
)

// RemoteRegistry provides access to functions served by an MCP server.
// It mirrors the surface of [function.Registry] but proxies calls to
// the remote server.
//
// RemoteRegistry is safe for concurrent use. The function list is
// cached locally and can be refreshed with [RemoteRegistry.Refresh].
type RemoteRegistry struct {
	client    *client.Client
	mu        sync.RWMutex
	functions map[string]ai.Function
}

// NewRemoteRegistry creates a RemoteRegistry connected to an MCP
// server via stdio. The command is the path to the server executable.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistrySSE creates a RemoteRegistry connected to an MCP
// server via SSE.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistryFromClient creates a RemoteRegistry from an
// existing MCP client. The client is started, initialized, and its
// tool list fetched.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistryFromClient(ctx, c)
}

func newRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "gpt-players-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		client:    c,
		functions: make(map[string]ai.Function),
	}

	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current function list from the MCP server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.functions = make(map[string]ai.Function, len(result.Tools))
	for _, t := range result.Tools {
		r.functions[t.Name] = FromMCPTool(t)
	}

	return nil
}

// Functions returns all functions available from the MCP server.
func (r *RemoteRegistry) Functions() []ai.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	functions := make([]ai.Function, 0, len(r.functions))
	for _, f := range r.functions {
		functions = append(functions, f)
	}
	return functions
}

// Get retrieves a function descriptor by name.
func (r *RemoteRegistry) Get(name string) (ai.Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.functions[name]
	return f, ok
}

// Names returns the names of all available functions.
func (r *RemoteRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	return names
}

// Len returns the number of available functions.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}

// Has reports whether the registry has a function with the given name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[name]
	return ok
}

// Execute calls a function on the remote MCP server. Transport errors
// are reported as error results rather than Go errors so a loop can
// feed them back to the model.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.FunctionCall) ai.FunctionResult {
	req := ToMCPCallToolRequest(call)

	result, err := r.client.CallTool(ctx, req)
	if err != nil {
		return ai.FunctionResult{
			CallID:    call.ID,
			Name:      call.Name,
			Content:   err.Error(),
			IsError:   true,
			ErrorKind: ai.ErrorKindExecution,
		}
	}

	return FromMCPCallToolResult(call, result)
}
