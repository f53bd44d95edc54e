// Package mcpserver implements a minimal MCP (Model Context Protocol) server:
// JSON-RPC 2.0 over plain HTTP POST, one request per call, with a pluggable
// tool registry. It intentionally speaks the simple JSON-over-HTTP dialect
// the exercises use rather than a streaming transport.
package mcpserver

import "encoding/json"

// ProtocolVersion is the MCP protocol revision this server speaks
const ProtocolVersion = "2025-03-26"

// JSON-RPC 2.0 error codes used by the server
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// Request is an incoming JSON-RPC 2.0 request. The ID is kept raw so string
// and numeric IDs round-trip unchanged.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC 2.0 response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the JSON-RPC error object
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func resultResponse(id json.RawMessage, result interface{}) Response {
	return Response{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
}

// toolCallParams are the parameters of a tools/call request
type toolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// resourceReadParams are the parameters of a resources/read request
type resourceReadParams struct {
	URI string `json:"uri"`
}

// toolDescriptor is the wire shape of one tool in tools/list and capabilities
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// resourceDescriptor is the wire shape of one resource in resources/list
type resourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType,omitempty"`
}

// contentBlock is one entry of a tool result or resource content
type contentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// serverInfo identifies the server in initialize and /capabilities
type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
