package foundry

import (
	"context"
	"fmt"
	"time"
)

const defaultPollInterval = time.Second

// ToolDispatcher executes a local function tool call on behalf of a run.
// Implemented by tools.Toolkit.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, name, arguments string) (string, error)
}

// WaitOptions controls run polling
type WaitOptions struct {
	// Interval between status checks; default 1s
	Interval time.Duration

	// OnPoll is invoked after every status check, for progress reporting
	OnPoll func(run *Run)
}

func (o WaitOptions) interval() time.Duration {
	if o.Interval > 0 {
		return o.Interval
	}
	return defaultPollInterval
}

// WaitForRun polls a run at a fixed interval until it leaves the active
// states (queued, in_progress, cancelling). It returns on the first terminal
// or requires_action status, or when the context is cancelled. The last
// observed run is always returned alongside a context error.
func (c *Client) WaitForRun(ctx context.Context, threadID, runID string, opts WaitOptions) (*Run, error) {
	run, err := c.GetRun(ctx, threadID, runID)
	if err != nil {
		return nil, err
	}
	if opts.OnPoll != nil {
		opts.OnPoll(run)
	}

	ticker := time.NewTicker(opts.interval())
	defer ticker.Stop()

	for run.Status == RunStatusQueued || run.Status == RunStatusInProgress || run.Status == RunStatusCancelling {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		run, err = c.GetRun(ctx, threadID, runID)
		if err != nil {
			return nil, err
		}
		if opts.OnPoll != nil {
			opts.OnPoll(run)
		}
	}

	return run, nil
}

// CreateAndProcessRun starts a run and drives it to a terminal state. When
// the run pauses on requires_action, pending function calls are dispatched to
// the toolkit and their outputs submitted back; a failing tool reports its
// error message as the tool output so the agent can react, mirroring how the
// service treats tool failures. A nil toolkit turns requires_action into an
// error, since the run could never finish.
func (c *Client) CreateAndProcessRun(ctx context.Context, threadID string, req CreateRunRequest, toolkit ToolDispatcher, opts WaitOptions) (*Run, error) {
	run, err := c.CreateRun(ctx, threadID, req)
	if err != nil {
		return nil, err
	}

	for {
		run, err = c.WaitForRun(ctx, threadID, run.ID, opts)
		if err != nil {
			return run, err
		}
		if run.Status != RunStatusRequiresAction {
			return run, nil
		}

		if toolkit == nil {
			return run, fmt.Errorf("run %s requires tool outputs but no toolkit is configured", run.ID)
		}
		outputs, err := c.collectToolOutputs(ctx, run, toolkit)
		if err != nil {
			return run, err
		}
		run, err = c.SubmitToolOutputs(ctx, threadID, run.ID, outputs)
		if err != nil {
			return run, err
		}
	}
}

func (c *Client) collectToolOutputs(ctx context.Context, run *Run, toolkit ToolDispatcher) ([]ToolOutput, error) {
	if run.RequiredAction == nil || run.RequiredAction.SubmitToolOutputs == nil {
		return nil, fmt.Errorf("run %s requires action but carries no tool calls", run.ID)
	}

	calls := run.RequiredAction.SubmitToolOutputs.ToolCalls
	outputs := make([]ToolOutput, 0, len(calls))
	for _, call := range calls {
		if call.Function == nil {
			continue
		}
		c.logger.Debug(ctx, "Dispatching tool call", map[string]interface{}{
			"run_id":    run.ID,
			"tool_call": call.ID,
			"function":  call.Function.Name,
		})

		output, err := toolkit.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
		if err != nil {
			c.logger.Warn(ctx, "Tool call failed", map[string]interface{}{
				"function": call.Function.Name,
				"error":    err.Error(),
			})
			output = fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		outputs = append(outputs, ToolOutput{ToolCallID: call.ID, Output: output})
	}
	return outputs, nil
}
