package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

func newDemoServer(t *testing.T) *Server {
	t.Helper()
	fixed := func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	tools := DemoToolset(fixed)
	return NewServer("BasicMCPServer", "1.0.0", tools,
		WithResources(&DemoResources{Name: "BasicMCPServer", Version: "1.0.0", Tools: tools}),
		WithServerLogger(logging.NewNoOpLogger()),
	)
}

func callTool(t *testing.T, server *Server, name string, args map[string]interface{}) Response {
	t.Helper()
	params, err := json.Marshal(toolCallParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 1), Method: "tools/call", Params: params,
	})
}

func toolText(t *testing.T, resp Response) string {
	t.Helper()
	require.Nil(t, resp.Error)
	content := resp.Result.(map[string]interface{})["content"].([]contentBlock)
	require.Len(t, content, 1)
	return content[0].Text
}

func TestDemoEcho(t *testing.T) {
	server := newDemoServer(t)
	text := toolText(t, callTool(t, server, "echo", map[string]interface{}{"text": "Hello, MCP!"}))
	assert.Equal(t, "Echo: Hello, MCP!", text)
}

func TestDemoCurrentTime(t *testing.T) {
	server := newDemoServer(t)
	text := toolText(t, callTool(t, server, "current_time", nil))
	assert.Equal(t, "Current time: 2024-03-01 09:00:00", text)
}

func TestDemoCalculate(t *testing.T) {
	server := newDemoServer(t)
	text := toolText(t, callTool(t, server, "calculate", map[string]interface{}{"expression": "2 + 3 * 4"}))
	assert.Equal(t, "Result: 14", text)
}

func TestDemoCalculate_DivideByZero(t *testing.T) {
	server := newDemoServer(t)
	resp := callTool(t, server, "calculate", map[string]interface{}{"expression": "1 / 0"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "division by zero")
}

func TestDemoResources(t *testing.T) {
	server := newDemoServer(t)
	ctx := context.Background()

	resp := server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 2), Method: "resources/list"})
	require.Nil(t, resp.Error)
	resources := resp.Result.(map[string]interface{})["resources"].([]resourceDescriptor)
	require.Len(t, resources, 2)

	params, _ := json.Marshal(resourceReadParams{URI: "mcp://server/info"})
	resp = server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 3), Method: "resources/read", Params: params})
	contents := resp.Result.(map[string]interface{})["contents"].([]contentBlock)
	assert.Contains(t, contents[0].Text, "BasicMCPServer")

	params, _ = json.Marshal(resourceReadParams{URI: "mcp://server/tools"})
	resp = server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 5), Method: "resources/read", Params: params})
	require.Nil(t, resp.Error)
	contents = resp.Result.(map[string]interface{})["contents"].([]contentBlock)
	for _, name := range []string{"echo", "calculate", "current_time"} {
		assert.Contains(t, contents[0].Text, name)
	}
	assert.Contains(t, contents[0].Text, "inputSchema")

	params, _ = json.Marshal(resourceReadParams{URI: "mcp://server/unknown"})
	resp = server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 4), Method: "resources/read", Params: params})
	require.NotNil(t, resp.Error)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"-3 + 5", 2},
		{"2 * -3", -6},
		{"1.5 + 2.25", 3.75},
		{"100", 100},
		{"((1 + 2) * (3 + 4))", 21},
	}
	for _, tc := range tests {
		got, err := Evaluate(tc.expr)
		require.NoError(t, err, tc.expr)
		assert.InDelta(t, tc.want, got, 1e-9, tc.expr)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	for _, expr := range []string{"", "2 +", "(1 + 2", "a + b", "1 2", "5 / 0"} {
		_, err := Evaluate(expr)
		assert.Error(t, err, expr)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "14", formatNumber(14))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "-6", formatNumber(-6))
}
