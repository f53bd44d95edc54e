// Package mcp provides a client for MCP servers speaking plain JSON-RPC 2.0
// over HTTP POST - the wire shape pkg/mcpserver serves.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/interfaces"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

// Client talks to one MCP server over HTTP. It implements
// interfaces.MCPServer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	sessionID  string

	nextID atomic.Int64

	mu           sync.RWMutex
	serverInfo   *interfaces.MCPServerInfo
	capabilities *interfaces.MCPServerCapabilities
	initialized  bool
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger sets a custom logger
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the MCP server at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, NewError("NewClient", "", ErrorTypeUnknown, fmt.Errorf("server URL is required"))
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.New(),
		sessionID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// rpc sends one JSON-RPC request and decodes the result into out
func (c *Client) rpc(ctx context.Context, operation, method string, params, out interface{}) error {
	id := c.nextID.Add(1)
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return NewError(operation, c.baseURL, ErrorTypeSerialization, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mcp", bytes.NewReader(body))
	if err != nil {
		return NewError(operation, c.baseURL, ErrorTypeUnknown, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classify(err, operation, c.baseURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Classify(err, operation, c.baseURL)
	}
	if resp.StatusCode != http.StatusOK {
		return NewError(operation, c.baseURL, ErrorTypeProtocol,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return NewError(operation, c.baseURL, ErrorTypeSerialization, err)
	}
	if envelope.Error != nil {
		return c.rpcError(operation, envelope.Error.Code, envelope.Error.Message)
	}
	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return NewError(operation, c.baseURL, ErrorTypeSerialization, err)
		}
	}
	return nil
}

func (c *Client) rpcError(operation string, code int, message string) *Error {
	errorType := ErrorTypeToolExecution
	switch {
	case code == -32601:
		errorType = ErrorTypeProtocol
	case strings.Contains(strings.ToLower(message), "unknown tool"):
		errorType = ErrorTypeToolNotFound
	case strings.Contains(strings.ToLower(message), "parameter is required"):
		errorType = ErrorTypeToolInvalidArg
	}
	return NewError(operation, c.baseURL, errorType, fmt.Errorf("server error %d: %s", code, message))
}

// Initialize performs the MCP initialize handshake and caches the server's
// identity and capabilities.
func (c *Client) Initialize(ctx context.Context) error {
	var result struct {
		ProtocolVersion string                           `json:"protocolVersion"`
		ServerInfo      interfaces.MCPServerInfo         `json:"serverInfo"`
		Capabilities    interfaces.MCPServerCapabilities `json:"capabilities"`
	}
	if err := c.rpc(ctx, "Initialize", "initialize", map[string]interface{}{}, &result); err != nil {
		return err
	}

	c.mu.Lock()
	c.serverInfo = &result.ServerInfo
	c.capabilities = &result.Capabilities
	c.initialized = true
	c.mu.Unlock()

	c.logger.Info(ctx, "MCP session initialized", map[string]interface{}{
		"server":   result.ServerInfo.Name,
		"version":  result.ServerInfo.Version,
		"protocol": result.ProtocolVersion,
	})
	return nil
}

// ListTools lists the tools the server exposes
func (c *Client) ListTools(ctx context.Context) ([]interfaces.MCPTool, error) {
	var result struct {
		Tools []interfaces.MCPTool `json:"tools"`
	}
	if err := c.rpc(ctx, "ListTools", "tools/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a tool by name with the given arguments
func (c *Client) CallTool(ctx context.Context, name string, args interface{}) (*interfaces.MCPToolResponse, error) {
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	var result interfaces.MCPToolResponse
	if err := c.rpc(ctx, "CallTool", "tools/call", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResources lists the resources the server exposes
func (c *Client) ListResources(ctx context.Context) ([]interfaces.MCPResource, error) {
	var result struct {
		Resources []interfaces.MCPResource `json:"resources"`
	}
	if err := c.rpc(ctx, "ListResources", "resources/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Resources, nil
}

// ReadResource reads one resource by URI
func (c *Client) ReadResource(ctx context.Context, uri string) (*interfaces.MCPResourceContent, error) {
	params := map[string]interface{}{"uri": uri}
	var result interfaces.MCPResourceContent
	if err := c.rpc(ctx, "ReadResource", "resources/read", params, &result); err != nil {
		return nil, err
	}
	if result.URI == "" {
		result.URI = uri
	}
	return &result, nil
}

// GetServerInfo returns the identity cached by Initialize
func (c *Client) GetServerInfo() (*interfaces.MCPServerInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, NewError("GetServerInfo", c.baseURL, ErrorTypeProtocol, fmt.Errorf("client not initialized"))
	}
	return c.serverInfo, nil
}

// GetCapabilities returns the capabilities cached by Initialize
func (c *Client) GetCapabilities() (*interfaces.MCPServerCapabilities, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, NewError("GetCapabilities", c.baseURL, ErrorTypeProtocol, fmt.Errorf("client not initialized"))
	}
	return c.capabilities, nil
}

// Close releases client resources. The HTTP transport is stateless, so this
// only clears the cached session data.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverInfo = nil
	c.capabilities = nil
	c.initialized = false
	return nil
}

// HealthStatus is the server's /health document
type HealthStatus struct {
	Status   string `json:"status"`
	Server   string `json:"server"`
	Protocol string `json:"protocol"`
}

// Health probes the server's health endpoint
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, NewError("Health", c.baseURL, ErrorTypeUnknown, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Classify(err, "Health", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewError("Health", c.baseURL, ErrorTypeProtocol,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, NewError("Health", c.baseURL, ErrorTypeSerialization, err)
	}
	return &status, nil
}

var _ interfaces.MCPServer = (*Client)(nil)
