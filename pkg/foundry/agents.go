package foundry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateAgentRequest holds the fields for creating or updating an agent
type CreateAgentRequest struct {
	Model        string            `json:"model"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	Tools        []ToolDefinition  `json:"tools,omitempty"`
	ToolRes      *ToolResources    `json:"tool_resources,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// CreateAgent creates a new agent
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/assistants", nil, req, &agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return &agent, nil
}

// GetAgent retrieves an agent by ID
func (c *Client) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodGet, "/assistants/"+agentID, nil, nil, &agent); err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", agentID, err)
	}
	return &agent, nil
}

// ListAgentsOptions controls paging for ListAgents
type ListAgentsOptions struct {
	Limit int    // page size, service default when 0
	After string // cursor: return agents after this ID
}

// ListAgents returns one page of agents
func (c *Client) ListAgents(ctx context.Context, opts ListAgentsOptions) ([]Agent, bool, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.After != "" {
		query.Set("after", opts.After)
	}
	var result page[Agent]
	if err := c.do(ctx, http.MethodGet, "/assistants", query, nil, &result); err != nil {
		return nil, false, fmt.Errorf("failed to list agents: %w", err)
	}
	return result.Data, result.HasMore, nil
}

// UpdateAgent updates an existing agent
func (c *Client) UpdateAgent(ctx context.Context, agentID string, req CreateAgentRequest) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/assistants/"+agentID, nil, req, &agent); err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", agentID, err)
	}
	return &agent, nil
}

// DeleteAgent deletes an agent
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	var status DeletionStatus
	if err := c.do(ctx, http.MethodDelete, "/assistants/"+agentID, nil, nil, &status); err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", agentID, err)
	}
	if !status.Deleted {
		return fmt.Errorf("agent %s was not deleted", agentID)
	}
	return nil
}

// EnsureAgent returns the existing agent with the requested name, creating it
// when none exists. This is the reuse-by-name pattern the exercises follow to
// avoid piling up duplicate agents between runs.
func (c *Client) EnsureAgent(ctx context.Context, req CreateAgentRequest) (*Agent, bool, error) {
	if req.Name == "" {
		return nil, false, fmt.Errorf("agent name is required to reuse by name")
	}

	after := ""
	for {
		agents, hasMore, err := c.ListAgents(ctx, ListAgentsOptions{Limit: 100, After: after})
		if err != nil {
			return nil, false, err
		}
		for i := range agents {
			if agents[i].Name == req.Name {
				return &agents[i], false, nil
			}
		}
		if !hasMore || len(agents) == 0 {
			break
		}
		after = agents[len(agents)-1].ID
	}

	agent, err := c.CreateAgent(ctx, req)
	if err != nil {
		return nil, false, err
	}
	return agent, true, nil
}
