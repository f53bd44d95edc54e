package foundry

import (
	"context"
	"fmt"
	"net/http"
)

// GetConnection retrieves a project connection by name. Connections bind
// agents to external systems such as SharePoint sites.
func (c *Client) GetConnection(ctx context.Context, name string) (*Connection, error) {
	if name == "" {
		return nil, fmt.Errorf("connection name is required")
	}
	var conn Connection
	if err := c.do(ctx, http.MethodGet, "/connections/"+name, nil, nil, &conn); err != nil {
		return nil, fmt.Errorf("failed to get connection %s: %w", name, err)
	}
	return &conn, nil
}
