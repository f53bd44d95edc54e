package foundry

import (
	"context"
	"fmt"
	"net/http"
)

// CreateRunRequest holds the fields for starting a run
type CreateRunRequest struct {
	AssistantID            string            `json:"assistant_id"`
	Instructions           string            `json:"instructions,omitempty"`
	AdditionalInstructions string            `json:"additional_instructions,omitempty"`
	Tools                  []ToolDefinition  `json:"tools,omitempty"`
	Metadata               map[string]string `json:"metadata,omitempty"`
}

// CreateRun starts a run of an agent on a thread
func (c *Client) CreateRun(ctx context.Context, threadID string, req CreateRunRequest) (*Run, error) {
	if req.AssistantID == "" {
		return nil, fmt.Errorf("assistant_id is required")
	}
	var run Run
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs", nil, req, &run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &run, nil
}

// GetRun retrieves the current state of a run
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, nil, &run); err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return &run, nil
}

// CancelRun requests cancellation of an in-flight run
func (c *Client) CancelRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs/"+runID+"/cancel", nil, nil, &run); err != nil {
		return nil, fmt.Errorf("failed to cancel run %s: %w", runID, err)
	}
	return &run, nil
}

// SubmitToolOutputs resumes a run paused on requires_action
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (*Run, error) {
	body := struct {
		ToolOutputs []ToolOutput `json:"tool_outputs"`
	}{ToolOutputs: outputs}

	var run Run
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs/"+runID+"/submit_tool_outputs", nil, body, &run); err != nil {
		return nil, fmt.Errorf("failed to submit tool outputs for run %s: %w", runID, err)
	}
	return &run, nil
}

// ListRunSteps returns the steps recorded for a run
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string) ([]RunStep, error) {
	var result page[RunStep]
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID+"/steps", nil, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list run steps: %w", err)
	}
	return result.Data, nil
}
