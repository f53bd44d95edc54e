package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

func newSQLServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "business.db")
	_, err := Seed(context.Background(), path)
	require.NoError(t, err)

	store, err := OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewServer("sqlite-mcp", "1.0", SQLToolset(store),
		WithResources(NewSQLResources(store)),
		WithServerLogger(logging.NewNoOpLogger()),
	)
}

func rawID(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHandle_Initialize(t *testing.T) {
	server := newSQLServer(t)

	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 1), Method: "initialize",
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.JSONEq(t, "1", string(resp.ID))

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
	assert.Equal(t, serverInfo{Name: "sqlite-mcp", Version: "1.0"}, result["serverInfo"])
}

func TestHandle_ToolsList(t *testing.T) {
	server := newSQLServer(t)

	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 2), Method: "tools/list",
	})
	require.Nil(t, resp.Error)

	tools := resp.Result.(map[string]interface{})["tools"].([]toolDescriptor)
	require.Len(t, tools, 3)
	assert.Equal(t, "list_tables", tools[0].Name)
	assert.Equal(t, "sql_query", tools[1].Name)
	assert.Equal(t, "table_schema", tools[2].Name)
}

func TestHandle_ToolCall_SQLQuery(t *testing.T) {
	server := newSQLServer(t)

	params, _ := json.Marshal(toolCallParams{
		Name: "sql_query",
		Arguments: map[string]interface{}{
			"query": "SELECT name FROM customers ORDER BY id",
		},
	})
	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 3), Method: "tools/call", Params: params,
	})
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, false, result["isError"])

	content := result["content"].([]contentBlock)
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0].Type)
	assert.Contains(t, content[0].Text, "Alice Johnson")
}

func TestHandle_ToolCall_SQLQueryWithParams(t *testing.T) {
	server := newSQLServer(t)

	params, _ := json.Marshal(map[string]interface{}{
		"name": "sql_query",
		"arguments": map[string]interface{}{
			"query":  "SELECT name FROM products WHERE price > ?",
			"params": []interface{}{100},
		},
	})
	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 4), Method: "tools/call", Params: params,
	})
	require.Nil(t, resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]contentBlock)
	assert.Contains(t, content[0].Text, "Laptop")
	assert.Contains(t, content[0].Text, "Monitor")
	assert.NotContains(t, content[0].Text, "Mouse")
}

func TestHandle_ToolCall_ListTables(t *testing.T) {
	server := newSQLServer(t)

	params, _ := json.Marshal(toolCallParams{Name: "list_tables"})
	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 5), Method: "tools/call", Params: params,
	})
	require.Nil(t, resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]contentBlock)
	for _, table := range []string{"customers", "orders", "products", "sales", "employees", "financials"} {
		assert.Contains(t, content[0].Text, table)
	}
}

func TestHandle_ToolCall_TableSchema(t *testing.T) {
	server := newSQLServer(t)

	params, _ := json.Marshal(toolCallParams{
		Name:      "table_schema",
		Arguments: map[string]interface{}{"table": "financials"},
	})
	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 6), Method: "tools/call", Params: params,
	})
	require.Nil(t, resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]contentBlock)
	assert.Contains(t, content[0].Text, "quarter")
	assert.Contains(t, content[0].Text, "revenue")
}

func TestHandle_ToolCall_Errors(t *testing.T) {
	server := newSQLServer(t)

	tests := []struct {
		name   string
		params interface{}
		want   string
	}{
		{"unknown tool", toolCallParams{Name: "nope"}, "Unknown tool"},
		{"missing query", toolCallParams{Name: "sql_query"}, "Query parameter is required"},
		{"missing table", toolCallParams{Name: "table_schema"}, "Table parameter is required"},
		{"bad sql", toolCallParams{Name: "sql_query", Arguments: map[string]interface{}{"query": "SELEC nope"}}, "syntax error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, _ := json.Marshal(tc.params)
			resp := server.Handle(context.Background(), Request{
				JSONRPC: "2.0", ID: rawID(t, 7), Method: "tools/call", Params: params,
			})
			require.NotNil(t, resp.Error)
			assert.Equal(t, CodeInternalError, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tc.want)
		})
	}
}

func TestHandle_UnknownMethod(t *testing.T) {
	server := newSQLServer(t)

	resp := server.Handle(context.Background(), Request{
		JSONRPC: "2.0", ID: rawID(t, 8), Method: "tools/destroy",
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "tools/destroy")
}

func TestHandle_Resources(t *testing.T) {
	server := newSQLServer(t)
	ctx := context.Background()

	resp := server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 9), Method: "resources/list"})
	require.Nil(t, resp.Error)
	resources := resp.Result.(map[string]interface{})["resources"].([]resourceDescriptor)
	require.Len(t, resources, 6)
	assert.Equal(t, "sqlite:///customers", resources[0].URI)

	params, _ := json.Marshal(resourceReadParams{URI: "sqlite:///customers"})
	resp = server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 10), Method: "resources/read", Params: params})
	require.Nil(t, resp.Error)
	contents := resp.Result.(map[string]interface{})["contents"].([]contentBlock)
	assert.Contains(t, contents[0].Text, "alice@example.com")

	params, _ = json.Marshal(resourceReadParams{URI: "file:///etc/passwd"})
	resp = server.Handle(ctx, Request{JSONRPC: "2.0", ID: rawID(t, 11), Method: "resources/read", Params: params})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "Invalid resource URI")
}

func TestHTTPHandler_RPCAndDocuments(t *testing.T) {
	server := newSQLServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	body, _ := json.Marshal(Request{JSONRPC: "2.0", ID: rawID(t, 1), Method: "tools/list"})
	resp, err := http.Post(ts.URL+"/mcp", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var rpcResp struct {
		Result struct {
			Tools []toolDescriptor `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	assert.Len(t, rpcResp.Result.Tools, 3)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	var healthDoc map[string]string
	require.NoError(t, json.NewDecoder(health.Body).Decode(&healthDoc))
	assert.Equal(t, "healthy", healthDoc["status"])
	assert.Equal(t, ProtocolVersion, healthDoc["protocol"])

	capabilities, err := http.Get(ts.URL + "/capabilities")
	require.NoError(t, err)
	defer capabilities.Body.Close()
	var capDoc map[string]interface{}
	require.NoError(t, json.NewDecoder(capabilities.Body).Decode(&capDoc))
	assert.Equal(t, ProtocolVersion, capDoc["protocolVersion"])
}

func TestHTTPHandler_InvalidJSON(t *testing.T) {
	server := newSQLServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/mcp", "application/json", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPHandler_CORSPreflight(t *testing.T) {
	server := newSQLServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/mcp", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "POST, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestHTTPHandler_UnknownPath(t *testing.T) {
	server := newSQLServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/other", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
