package world

import (
	"fmt"

	"blocksmith/internal/physics"
	"blocksmith/internal/search"
	"blocksmith/internal/types"
)

// Model is the transition function over States, bound to a set of physical
// laws. It implements search.Graph[State]; the state graph is never
// materialized, only expanded on demand.
type Model struct {
	laws physics.Laws
}

// NewModel builds a transition model over the given laws.
func NewModel(laws physics.Laws) *Model {
	return &Model{laws: laws}
}

// Successors enumerates every state reachable by exactly one arm action,
// in the fixed order left, right, pick, drop. Each action contributes at
// most one state; pick and drop are mutually exclusive by the gripper
// invariant.
func (m *Model) Successors(s State) []State {
	next := make([]State, 0, 4)

	if s.Arm > 0 {
		next = append(next, s.moveLeft())
	}
	if s.Arm < len(s.Stacks)-1 {
		next = append(next, s.moveRight())
	}

	if s.Holding == "" {
		if len(s.Stacks[s.Arm]) > 0 {
			next = append(next, s.pick())
		}
	} else if m.laws.Legal(types.RelOnTop, s.Holding, m.dropTarget(s)) {
		next = append(next, s.drop())
	}

	return next
}

// dropTarget is what the held object would land on: the top of the column
// under the arm, or the floor when the column is empty.
func (m *Model) dropTarget(s State) string {
	col := s.Stacks[s.Arm]
	if len(col) == 0 {
		return types.Floor
	}
	return col[len(col)-1]
}

// OutgoingEdges implements search.Graph. Every arm action costs 1.
func (m *Model) OutgoingEdges(s State) []search.Edge[State] {
	succ := m.Successors(s)
	edges := make([]search.Edge[State], len(succ))
	for i, n := range succ {
		edges[i] = search.Edge[State]{From: s, To: n, Cost: 1}
	}
	return edges
}

// Classify names the single primitive action transforming prev into next.
// A pair matching none of the four actions is a contract violation and
// reported as an error.
func Classify(prev, next State) (types.Action, error) {
	switch {
	case next.Arm == prev.Arm-1 && next.Holding == prev.Holding:
		return types.ActionLeft, nil
	case next.Arm == prev.Arm+1 && next.Holding == prev.Holding:
		return types.ActionRight, nil
	case next.Arm == prev.Arm && prev.Holding == "" && next.Holding != "":
		return types.ActionPick, nil
	case next.Arm == prev.Arm && prev.Holding != "" && next.Holding == "":
		return types.ActionDrop, nil
	default:
		return "", fmt.Errorf("world: no primitive action leads from %s to %s", prev, next)
	}
}

// Apply executes one primitive action on a state, enforcing the same
// legality rules as the transition function. Used to replay plans.
func (m *Model) Apply(s State, a types.Action) (State, error) {
	switch a {
	case types.ActionLeft:
		if s.Arm <= 0 {
			return State{}, fmt.Errorf("world: cannot move left from column 0")
		}
		return s.moveLeft(), nil
	case types.ActionRight:
		if s.Arm >= len(s.Stacks)-1 {
			return State{}, fmt.Errorf("world: cannot move right from column %d", s.Arm)
		}
		return s.moveRight(), nil
	case types.ActionPick:
		if s.Holding != "" {
			return State{}, fmt.Errorf("world: already holding %q", s.Holding)
		}
		if len(s.Stacks[s.Arm]) == 0 {
			return State{}, fmt.Errorf("world: nothing to pick in column %d", s.Arm)
		}
		return s.pick(), nil
	case types.ActionDrop:
		if s.Holding == "" {
			return State{}, fmt.Errorf("world: nothing to drop")
		}
		if !m.laws.Legal(types.RelOnTop, s.Holding, m.dropTarget(s)) {
			return State{}, fmt.Errorf("world: cannot drop %q onto %q", s.Holding, m.dropTarget(s))
		}
		return s.drop(), nil
	default:
		return State{}, fmt.Errorf("world: unknown action %q", a)
	}
}
