package foundry

import (
	"context"
	"fmt"
	"net/http"
)

// CreateThreadRequest holds the optional fields for creating a thread
type CreateThreadRequest struct {
	Messages []CreateMessageRequest `json:"messages,omitempty"`
	ToolRes  *ToolResources         `json:"tool_resources,omitempty"`
	Metadata map[string]string      `json:"metadata,omitempty"`
}

// CreateThread creates a new conversation thread
func (c *Client) CreateThread(ctx context.Context, req CreateThreadRequest) (*Thread, error) {
	var thread Thread
	if err := c.do(ctx, http.MethodPost, "/threads", nil, req, &thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}
	return &thread, nil
}

// GetThread retrieves a thread by ID
func (c *Client) GetThread(ctx context.Context, threadID string) (*Thread, error) {
	var thread Thread
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID, nil, nil, &thread); err != nil {
		return nil, fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}
	return &thread, nil
}

// DeleteThread deletes a thread
func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	var status DeletionStatus
	if err := c.do(ctx, http.MethodDelete, "/threads/"+threadID, nil, nil, &status); err != nil {
		return fmt.Errorf("failed to delete thread %s: %w", threadID, err)
	}
	return nil
}
