package foundry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message list orders
const (
	OrderAscending  = "asc"
	OrderDescending = "desc"
)

// CreateMessageRequest holds the fields for adding a message to a thread
type CreateMessageRequest struct {
	Role        string            `json:"role"`
	Content     string            `json:"content"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CreateMessage adds a message to a thread
func (c *Client) CreateMessage(ctx context.Context, threadID string, req CreateMessageRequest) (*Message, error) {
	if req.Role == "" {
		req.Role = RoleUser
	}
	var message Message
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/messages", nil, req, &message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &message, nil
}

// GetMessage retrieves a single message
func (c *Client) GetMessage(ctx context.Context, threadID, messageID string) (*Message, error) {
	var message Message
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages/"+messageID, nil, nil, &message); err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return &message, nil
}

// ListMessagesOptions controls ordering and paging for ListMessages
type ListMessagesOptions struct {
	Order string // OrderAscending or OrderDescending; service default is descending
	Limit int
	RunID string // restrict to messages produced by one run
}

// ListMessages returns the messages on a thread
func (c *Client) ListMessages(ctx context.Context, threadID string, opts ListMessagesOptions) ([]Message, error) {
	query := url.Values{}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.RunID != "" {
		query.Set("run_id", opts.RunID)
	}
	var result page[Message]
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages", query, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return result.Data, nil
}

// LatestAssistantMessage returns the most recent assistant message on the
// thread, or an error when the thread has none.
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (*Message, error) {
	messages, err := c.ListMessages(ctx, threadID, ListMessagesOptions{Order: OrderDescending})
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].Role == RoleAssistant {
			return &messages[i], nil
		}
	}
	return nil, fmt.Errorf("thread %s has no assistant messages", threadID)
}
