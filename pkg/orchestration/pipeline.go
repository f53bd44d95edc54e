package orchestration

import (
	"context"
	"fmt"
)

// StepResult records one pipeline stage's input and output
type StepResult struct {
	Name   string
	Input  string
	Output string
}

// Pipeline runs agents in a fixed order, feeding each agent's answer to the
// next one as its input.
type Pipeline struct {
	runner *Runner
	steps  []Specialist
}

// NewPipeline creates a pipeline over the given specialists, in order
func NewPipeline(runner *Runner, steps ...Specialist) *Pipeline {
	return &Pipeline{runner: runner, steps: steps}
}

// Execute pushes input through every stage. It returns the per-stage results
// accumulated so far even when a stage fails, so callers can report progress.
func (p *Pipeline) Execute(ctx context.Context, input string) ([]StepResult, error) {
	if len(p.steps) == 0 {
		return nil, fmt.Errorf("pipeline has no steps")
	}

	results := make([]StepResult, 0, len(p.steps))
	current := input
	for _, step := range p.steps {
		p.runner.logger.Info(ctx, "Running pipeline stage", map[string]interface{}{
			"stage": step.Name,
			"agent": step.AgentID,
		})
		output, err := p.runner.RunOnce(ctx, step.AgentID, current)
		if err != nil {
			return results, fmt.Errorf("stage %s: %w", step.Name, err)
		}
		results = append(results, StepResult{Name: step.Name, Input: current, Output: output})
		current = output
	}
	return results, nil
}

// Final returns the last stage's output, or ""
func Final(results []StepResult) string {
	if len(results) == 0 {
		return ""
	}
	return results[len(results)-1].Output
}
