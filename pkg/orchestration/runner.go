// Package orchestration contains thin sequencing helpers over hosted agents:
// a fixed-order pipeline, a round-robin review loop and a keyword router with
// concurrent fan-out. These are deliberately plain call sequences, not a
// workflow engine; each helper owns nothing beyond the order of service calls.
package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/foundry"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

// Specialist is one named hosted agent taking part in an orchestration
type Specialist struct {
	Name    string
	AgentID string

	// Capabilities are keywords the router matches requests against
	Capabilities []string
}

// Runner executes single agent turns for the orchestration helpers
type Runner struct {
	client   *foundry.Client
	logger   logging.Logger
	interval time.Duration
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithLogger sets a custom logger
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithPollInterval overrides the run polling interval
func WithPollInterval(interval time.Duration) RunnerOption {
	return func(r *Runner) { r.interval = interval }
}

// NewRunner creates a runner over the given client
func NewRunner(client *foundry.Client, opts ...RunnerOption) *Runner {
	r := &Runner{
		client: client,
		logger: logging.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce posts input on a fresh thread, runs the agent to completion and
// returns the latest assistant text. The thread is deleted afterwards.
func (r *Runner) RunOnce(ctx context.Context, agentID, input string) (string, error) {
	thread, err := r.client.CreateThread(ctx, foundry.CreateThreadRequest{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err := r.client.DeleteThread(context.WithoutCancel(ctx), thread.ID); err != nil {
			r.logger.Warn(ctx, "Failed to delete pipeline thread", map[string]interface{}{
				"thread_id": thread.ID,
				"error":     err.Error(),
			})
		}
	}()

	return r.RunOnThread(ctx, thread.ID, agentID, input)
}

// RunOnThread posts input on an existing thread and runs the agent on it
func (r *Runner) RunOnThread(ctx context.Context, threadID, agentID, input string) (string, error) {
	if _, err := r.client.CreateMessage(ctx, threadID, foundry.CreateMessageRequest{
		Role:    foundry.RoleUser,
		Content: input,
	}); err != nil {
		return "", err
	}

	run, err := r.client.CreateAndProcessRun(ctx, threadID,
		foundry.CreateRunRequest{AssistantID: agentID}, nil,
		foundry.WaitOptions{Interval: r.interval})
	if err != nil {
		return "", err
	}
	if run.Status != foundry.RunStatusCompleted {
		if run.LastError != nil {
			return "", fmt.Errorf("run for agent %s ended with status %s: %s", agentID, run.Status, run.LastError.Message)
		}
		return "", fmt.Errorf("run for agent %s ended with status %s", agentID, run.Status)
	}

	message, err := r.client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		return "", err
	}
	return message.Text(), nil
}
