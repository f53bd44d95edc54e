package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SQLToolset returns the SQL tools backed by the store: raw query execution,
// table listing and schema inspection. Pair it with SQLResources for the
// sqlite:/// resource surface.
func SQLToolset(store *Store) []Tool {
	return []Tool{
		{
			Name:        "sql_query",
			Description: "Execute SQL queries on the database",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "SQL query to execute",
					},
					"params": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Query parameters",
					},
				},
				"required": []string{"query"},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
				query, _ := args["query"].(string)
				if strings.TrimSpace(query) == "" {
					return "", fmt.Errorf("Query parameter is required")
				}
				var params []interface{}
				if raw, ok := args["params"].([]interface{}); ok {
					params = raw
				}
				result, err := store.Query(ctx, query, params)
				if err != nil {
					return "", err
				}
				return indentJSON(result)
			},
		},
		{
			Name:        "list_tables",
			Description: "List all tables in the database",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
			Handler: func(ctx context.Context, _ map[string]interface{}) (string, error) {
				tables, err := store.Tables(ctx)
				if err != nil {
					return "", err
				}
				rows := make([]map[string]interface{}, 0, len(tables))
				for _, table := range tables {
					rows = append(rows, map[string]interface{}{"name": table})
				}
				return indentJSON(rows)
			},
		},
		{
			Name:        "table_schema",
			Description: "Get schema for a table",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"table": map[string]interface{}{
						"type":        "string",
						"description": "Table name",
					},
				},
				"required": []string{"table"},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
				table, _ := args["table"].(string)
				if strings.TrimSpace(table) == "" {
					return "", fmt.Errorf("Table parameter is required")
				}
				schema, err := store.Schema(ctx, strings.TrimSpace(table))
				if err != nil {
					return "", err
				}
				return indentJSON(schema)
			},
		},
	}
}

const sqliteURIPrefix = "sqlite:///"

// SQLResources exposes every table of the store as a sqlite:///<table>
// resource whose content is the full table dump.
type SQLResources struct {
	store *Store
}

// NewSQLResources creates the resource provider over the store
func NewSQLResources(store *Store) *SQLResources {
	return &SQLResources{store: store}
}

func (r *SQLResources) ListResources(ctx context.Context) ([]Resource, error) {
	tables, err := r.store.Tables(ctx)
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(tables))
	for _, table := range tables {
		resources = append(resources, Resource{
			URI:         sqliteURIPrefix + table,
			Name:        table,
			Description: fmt.Sprintf("SQLite table: %s", table),
		})
	}
	return resources, nil
}

func (r *SQLResources) ReadResource(ctx context.Context, uri string) (string, error) {
	if !strings.HasPrefix(uri, sqliteURIPrefix) {
		return "", fmt.Errorf("Invalid resource URI")
	}
	table := strings.TrimPrefix(uri, sqliteURIPrefix)
	rows, err := r.store.ReadTable(ctx, table)
	if err != nil {
		return "", err
	}
	return indentJSON(rows)
}

func indentJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}
