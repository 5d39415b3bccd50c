// Package planner turns a DNF goal and a start state into a sequence of
// primitive arm actions. It binds the transition model as the search
// graph, the goal evaluator as the goal test and the remaining-cost
// estimate as the heuristic, then converts the state path the engine
// returns into actions.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"blocksmith/internal/goal"
	"blocksmith/internal/heuristic"
	"blocksmith/internal/physics"
	"blocksmith/internal/search"
	"blocksmith/internal/types"
	"blocksmith/internal/world"
)

var (
	// ErrTimeout means the search ran out of wall-clock budget before
	// finding a goal state.
	ErrTimeout = errors.New("planner: search timed out")

	// ErrNoPlan means the whole reachable state space was explored and
	// no state satisfies the goal.
	ErrNoPlan = errors.New("planner: no plan exists")

	// ErrInconsistent means the engine returned a state path whose
	// consecutive states are not related by any primitive action. This
	// is an internal defect, never a property of the input.
	ErrInconsistent = errors.New("planner: inconsistent state path")
)

// Result is one successful planning outcome.
type Result struct {
	// ID tags the result for logs and cross-referencing.
	ID string

	// Actions transforms the start state into a goal state when applied
	// in order. Empty when the start state already satisfies the goal.
	Actions []types.Action

	// Cost is the accumulated edge cost, equal to len(Actions) in this
	// single-arm domain.
	Cost float64

	// Expanded counts states the engine popped from the frontier.
	Expanded int

	// Elapsed is the search wall-clock time.
	Elapsed time.Duration
}

// Planner plans over one physical-law regime. Safe for concurrent use.
type Planner struct {
	model       *world.Model
	parallelism int
}

// New builds a planner. parallelism caps how many goal alternatives
// PlanAny searches at once; zero or negative means no cap.
func New(laws physics.Laws, parallelism int) *Planner {
	return &Planner{model: world.NewModel(laws), parallelism: parallelism}
}

// Plan searches for a minimum-length action sequence satisfying the
// formula. A start state that already satisfies the goal is a zero-action
// success, not an error. timeout <= 0 means no limit.
func (p *Planner) Plan(f types.Formula, start world.State, timeout time.Duration) (*Result, error) {
	if goal.Satisfied(f, start) {
		return &Result{ID: uuid.NewString()}, nil
	}

	res, err := search.Run[world.State](
		p.model,
		start,
		func(s world.State) bool { return goal.Satisfied(f, s) },
		func(s world.State) float64 { return heuristic.Estimate(s, f) },
		timeout,
	)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrTimeout):
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		case errors.Is(err, search.ErrExhausted):
			return nil, ErrNoPlan
		default:
			return nil, fmt.Errorf("planner: %w", err)
		}
	}

	actions, err := actionsFromPath(res.Path)
	if err != nil {
		return nil, err
	}
	return &Result{
		ID:       uuid.NewString(),
		Actions:  actions,
		Cost:     res.Cost,
		Expanded: res.Expanded,
		Elapsed:  res.Elapsed,
	}, nil
}

// PlanAny plans every formula concurrently, up to the configured
// parallelism cap, and returns the cheapest result. It fails only when
// no formula yields a plan; the error then
// reflects the most actionable failure (timeout over exhaustion).
func (p *Planner) PlanAny(formulas []types.Formula, start world.State, timeout time.Duration) (*Result, error) {
	if len(formulas) == 0 {
		return nil, ErrNoPlan
	}

	results := make([]*Result, len(formulas))
	errs := make([]error, len(formulas))

	var g errgroup.Group
	if p.parallelism > 0 {
		g.SetLimit(p.parallelism)
	}
	for i, f := range formulas {
		i, f := i, f
		g.Go(func() error {
			results[i], errs[i] = p.Plan(f, start, timeout)
			return nil
		})
	}
	// Workers report through the slices, never through errgroup.
	_ = g.Wait()

	var best *Result
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || r.Cost < best.Cost {
			best = r
		}
	}
	if best != nil {
		return best, nil
	}

	for _, err := range errs {
		if errors.Is(err, ErrTimeout) {
			return nil, err
		}
	}
	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrNoPlan) {
			return nil, err
		}
	}
	return nil, ErrNoPlan
}

// actionsFromPath classifies each consecutive state pair. The path comes
// straight from the engine, so a pair no primitive action explains means
// the transition model and the engine disagree.
func actionsFromPath(path []world.State) ([]types.Action, error) {
	if len(path) < 2 {
		return nil, nil
	}
	actions := make([]types.Action, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		a, err := world.Classify(path[i-1], path[i])
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInconsistent, i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Replay applies a plan's actions from a start state and returns the end
// state, verifying every step against the physical laws. Used to check
// path validity independently of the search.
func (p *Planner) Replay(start world.State, actions []types.Action) (world.State, error) {
	s := start
	for i, a := range actions {
		next, err := p.model.Apply(s, a)
		if err != nil {
			return s, fmt.Errorf("planner: replay step %d (%s): %w", i, a, err)
		}
		s = next
	}
	return s, nil
}
