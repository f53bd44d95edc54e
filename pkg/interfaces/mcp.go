package interfaces

import "context"

// MCPServer represents a connection to an MCP server
type MCPServer interface {
	// Initialize initializes the connection to the MCP server
	Initialize(ctx context.Context) error

	// ListTools lists the tools available on the MCP server
	ListTools(ctx context.Context) ([]MCPTool, error)

	// CallTool calls a tool on the MCP server
	CallTool(ctx context.Context, name string, args interface{}) (*MCPToolResponse, error)

	// ListResources lists the resources available on the MCP server
	ListResources(ctx context.Context) ([]MCPResource, error)

	// ReadResource retrieves a specific resource by URI
	ReadResource(ctx context.Context, uri string) (*MCPResourceContent, error)

	// GetServerInfo returns the server metadata discovered during initialization
	GetServerInfo() (*MCPServerInfo, error)

	// GetCapabilities returns the server capabilities discovered during initialization
	GetCapabilities() (*MCPServerCapabilities, error)

	// Close closes the connection to the MCP server
	Close() error
}

// MCPTool represents a tool available on an MCP server
type MCPTool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Schema      interface{} `json:"inputSchema,omitempty"`
}

// MCPContent represents a single content block in a tool response
type MCPContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"` // base64 encoded for binary content
	MimeType string `json:"mimeType,omitempty"`
}

// MCPToolResponse represents a response from a tool call
type MCPToolResponse struct {
	Content []MCPContent `json:"content,omitempty"`
	IsError bool         `json:"isError,omitempty"`
}

// MCPResource represents a resource available on an MCP server
type MCPResource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// MCPResourceContent represents the content of a resource
type MCPResourceContent struct {
	URI      string       `json:"uri,omitempty"`
	Contents []MCPContent `json:"contents"`
}

// MCPServerInfo represents server metadata discovered during initialization
type MCPServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// MCPServerCapabilities represents server capabilities discovered during
// initialization. Servers advertise their tools as a map keyed by tool name,
// with the description and input schema as the value.
type MCPServerCapabilities struct {
	Tools     map[string]interface{} `json:"tools,omitempty"`
	Resources map[string]interface{} `json:"resources,omitempty"`
}
