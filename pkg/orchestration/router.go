package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Router picks the specialist whose capability keywords best match a request.
// Matching is plain case-insensitive substring counting; ties go to the
// earlier specialist, and a request matching nothing falls back to the first.
type Router struct {
	specialists []Specialist
}

// NewRouter creates a router over the given specialists
func NewRouter(specialists ...Specialist) *Router {
	return &Router{specialists: specialists}
}

// Route returns the best-matching specialist for the request
func (r *Router) Route(request string) (Specialist, error) {
	if len(r.specialists) == 0 {
		return Specialist{}, fmt.Errorf("router has no specialists")
	}

	lowered := strings.ToLower(request)
	best := r.specialists[0]
	bestScore := 0
	for _, s := range r.specialists {
		score := 0
		for _, keyword := range s.Capabilities {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	return best, nil
}

// Dispatch routes the request and runs the chosen specialist once
func (r *Router) Dispatch(ctx context.Context, runner *Runner, request string) (string, Specialist, error) {
	chosen, err := r.Route(request)
	if err != nil {
		return "", Specialist{}, err
	}
	runner.logger.Info(ctx, "Routing request", map[string]interface{}{
		"specialist": chosen.Name,
		"agent":      chosen.AgentID,
	})
	output, err := runner.RunOnce(ctx, chosen.AgentID, request)
	return output, chosen, err
}

// FanOut sends the same request to every specialist concurrently, each on its
// own thread, and collects the answers by specialist name. The first failure
// cancels the remaining runs.
func FanOut(ctx context.Context, runner *Runner, specialists []Specialist, request string) (map[string]string, error) {
	if len(specialists) == 0 {
		return nil, fmt.Errorf("fan-out has no specialists")
	}

	var mu sync.Mutex
	answers := make(map[string]string, len(specialists))

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range specialists {
		g.Go(func() error {
			output, err := runner.RunOnce(gctx, s.AgentID, request)
			if err != nil {
				return fmt.Errorf("specialist %s: %w", s.Name, err)
			}
			mu.Lock()
			answers[s.Name] = output
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}
