package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

// Tool is one callable tool in the server's registry
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}

	// Handler executes the tool; its error becomes a -32603 JSON-RPC error
	Handler func(ctx context.Context, args map[string]interface{}) (string, error)
}

// ResourceProvider exposes readable resources alongside the tools
type ResourceProvider interface {
	ListResources(ctx context.Context) ([]Resource, error)
	ReadResource(ctx context.Context, uri string) (string, error)
}

// Resource describes one readable resource
type Resource struct {
	URI         string
	Name        string
	Description string
	MimeType    string
}

// Server dispatches JSON-RPC requests to a tool registry. Zero value is not
// usable; construct with NewServer.
type Server struct {
	name      string
	version   string
	tools     map[string]Tool
	resources ResourceProvider
	logger    logging.Logger
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithResources attaches a resource provider
func WithResources(provider ResourceProvider) ServerOption {
	return func(s *Server) { s.resources = provider }
}

// WithServerLogger sets a custom logger
func WithServerLogger(logger logging.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a server exposing the given tools
func NewServer(name, version string, tools []Tool, opts ...ServerOption) *Server {
	s := &Server{
		name:    name,
		version: version,
		tools:   make(map[string]Tool, len(tools)),
		logger:  logging.New(),
	}
	for _, tool := range tools {
		s.tools[tool.Name] = tool
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle dispatches one JSON-RPC request and always produces a response;
// failures surface as JSON-RPC error objects, never as Go errors.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	s.logger.Debug(ctx, "Handling request", map[string]interface{}{
		"method": req.Method,
	})

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"serverInfo":      serverInfo{Name: s.name, Version: s.version},
			"capabilities":    map[string]interface{}{"tools": s.toolCapabilities()},
		})

	case "tools/list":
		return resultResponse(req.ID, map[string]interface{}{
			"tools": s.toolDescriptors(),
		})

	case "tools/call":
		return s.handleToolCall(ctx, req)

	case "resources/list":
		return s.handleResourcesList(ctx, req)

	case "resources/read":
		return s.handleResourceRead(ctx, req)

	default:
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleToolCall(ctx context.Context, req Request) Response {
	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, CodeInternalError, fmt.Sprintf("invalid tools/call params: %v", err))
		}
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		return errorResponse(req.ID, CodeInternalError, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	text, err := tool.Handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn(ctx, "Tool execution failed", map[string]interface{}{
			"tool":  params.Name,
			"error": err.Error(),
		})
		return errorResponse(req.ID, CodeInternalError, err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"content": []contentBlock{{Type: "text", Text: text}},
		"isError": false,
	})
}

func (s *Server) handleResourcesList(ctx context.Context, req Request) Response {
	if s.resources == nil {
		return resultResponse(req.ID, map[string]interface{}{"resources": []resourceDescriptor{}})
	}
	resources, err := s.resources.ListResources(ctx)
	if err != nil {
		return errorResponse(req.ID, CodeInternalError, err.Error())
	}
	descriptors := make([]resourceDescriptor, 0, len(resources))
	for _, r := range resources {
		descriptors = append(descriptors, resourceDescriptor{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MimeType:    r.MimeType,
		})
	}
	return resultResponse(req.ID, map[string]interface{}{"resources": descriptors})
}

func (s *Server) handleResourceRead(ctx context.Context, req Request) Response {
	if s.resources == nil {
		return errorResponse(req.ID, CodeInternalError, "server exposes no resources")
	}
	var params resourceReadParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, CodeInternalError, fmt.Sprintf("invalid resources/read params: %v", err))
		}
	}
	text, err := s.resources.ReadResource(ctx, params.URI)
	if err != nil {
		return errorResponse(req.ID, CodeInternalError, err.Error())
	}
	return resultResponse(req.ID, map[string]interface{}{
		"contents": []contentBlock{{Type: "text", Text: text, URI: params.URI}},
	})
}

func (s *Server) toolDescriptors() []toolDescriptor {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	descriptors := make([]toolDescriptor, 0, len(names))
	for _, name := range names {
		tool := s.tools[name]
		descriptors = append(descriptors, toolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return descriptors
}

func (s *Server) toolCapabilities() map[string]interface{} {
	capabilities := make(map[string]interface{}, len(s.tools))
	for name, tool := range s.tools {
		capabilities[name] = map[string]interface{}{
			"description": tool.Description,
			"inputSchema": tool.InputSchema,
		}
	}
	return capabilities
}

// Handler returns the HTTP surface of the server: POST / and /mcp accept one
// JSON-RPC request per call, GET /health and /capabilities return status
// documents, and OPTIONS answers CORS preflight.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveRPC)
	mux.HandleFunc("/mcp", s.serveRPC)
	mux.HandleFunc("/health", s.serveHealth)
	mux.HandleFunc("/capabilities", s.serveCapabilities)
	return mux
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORSPreflight(w)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	if r.URL.Path != "/" && r.URL.Path != "/mcp" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	writeJSON(w, http.StatusOK, s.Handle(r.Context(), req))
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORSPreflight(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"server":   s.name,
		"protocol": ProtocolVersion,
	})
}

func (s *Server) serveCapabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeCORSPreflight(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"serverInfo":      serverInfo{Name: s.name, Version: s.version},
		"capabilities":    map[string]interface{}{"tools": s.toolCapabilities()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCORSPreflight(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-ID, Authorization")
	w.WriteHeader(http.StatusNoContent)
}
