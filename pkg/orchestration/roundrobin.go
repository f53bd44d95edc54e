package orchestration

import (
	"context"
	"fmt"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/foundry"
)

// Turn is one agent's contribution in a round-robin conversation
type Turn struct {
	Round  int
	Name   string
	Output string
}

// RoundRobin lets a group of agents take turns on one shared thread, each
// seeing everything said before its turn. Useful for draft/review/revise
// loops between specialists.
type RoundRobin struct {
	runner *Runner
	agents []Specialist
	rounds int
}

// NewRoundRobin creates a round-robin over the given agents. rounds is the
// number of full passes over the group; values below 1 mean a single pass.
func NewRoundRobin(runner *Runner, rounds int, agents ...Specialist) *RoundRobin {
	if rounds < 1 {
		rounds = 1
	}
	return &RoundRobin{runner: runner, agents: agents, rounds: rounds}
}

// Execute seeds a fresh thread with the task and gives every agent its turns.
// Each turn prompts the agent by name so it can find its role in the shared
// history. The thread is deleted when the conversation ends.
func (rr *RoundRobin) Execute(ctx context.Context, task string) ([]Turn, error) {
	if len(rr.agents) == 0 {
		return nil, fmt.Errorf("round robin has no agents")
	}

	thread, err := rr.runner.client.CreateThread(ctx, foundry.CreateThreadRequest{
		Messages: []foundry.CreateMessageRequest{
			{Role: foundry.RoleUser, Content: task},
		},
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rr.runner.client.DeleteThread(context.WithoutCancel(ctx), thread.ID); err != nil {
			rr.runner.logger.Warn(ctx, "Failed to delete round-robin thread", map[string]interface{}{
				"thread_id": thread.ID,
				"error":     err.Error(),
			})
		}
	}()

	turns := make([]Turn, 0, rr.rounds*len(rr.agents))
	for round := 1; round <= rr.rounds; round++ {
		for _, agent := range rr.agents {
			prompt := fmt.Sprintf("It is now %s's turn (round %d). Continue the conversation above in your role.", agent.Name, round)
			output, err := rr.runner.RunOnThread(ctx, thread.ID, agent.AgentID, prompt)
			if err != nil {
				return turns, fmt.Errorf("round %d, agent %s: %w", round, agent.Name, err)
			}
			turns = append(turns, Turn{Round: round, Name: agent.Name, Output: output})
		}
	}
	return turns, nil
}
