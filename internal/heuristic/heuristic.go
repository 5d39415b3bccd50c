// Package heuristic estimates the minimum number of primitive actions from
// a state to a DNF goal. The estimate guides A* and must never exceed the
// true remaining cost: every term below counts only actions that are
// structurally unavoidable (arm travel, obligatory obstacle removal, the
// final pick or drop), and math.Inf(1) marks goals with no finite plan.
package heuristic

import (
	"math"

	"blocksmith/internal/goal"
	"blocksmith/internal/types"
	"blocksmith/internal/world"
)

const (
	// unburyCost is charged per object stacked above something the arm
	// must pick: pick, move aside, drop, move back. The return move is
	// forced because the next pick happens in the same column.
	unburyCost = 4

	// clearCost is charged per object that must leave a destination
	// stack: its pick and drop only. Its aside moves can coincide with
	// arm travel already charged through the holding and carry terms.
	clearCost = 2
)

// Estimate returns an admissible lower bound on actions-to-goal. A
// satisfied formula estimates 0; a formula no plan can satisfy estimates
// +Inf. Disjuncts are combined with min (any one suffices), the literals
// of a conjunct with sum.
func Estimate(s world.State, f types.Formula) float64 {
	if goal.Satisfied(f, s) {
		return 0
	}

	best := math.Inf(1)
	for _, conj := range f {
		sum := 0.0
		for _, lit := range conj {
			sum += Steps(s, lit)
		}
		if sum < best {
			best = sum
		}
	}
	return best
}

// Steps estimates one literal. Satisfied literals cost 0; a literal whose
// relation value is outside the closed enum estimates +Inf so the search
// can never prefer it.
func Steps(s world.State, lit types.Literal) float64 {
	if goal.Holds(lit, s) {
		return 0
	}
	if !lit.WellFormed() {
		return math.Inf(1)
	}
	if !lit.Polarity {
		// The relation currently holds and must be broken: at least
		// one action, whatever it is.
		return 1
	}

	switch lit.Relation {
	case types.RelHolding:
		return holdingSteps(s, lit.Args[0])
	case types.RelAbove:
		return aboveSteps(s, lit.Args[0], lit.Args[1])
	case types.RelUnder:
		return aboveSteps(s, lit.Args[1], lit.Args[0])
	case types.RelOnTop, types.RelInside:
		return onTopSteps(s, lit.Args[0], lit.Args[1])
	case types.RelBeside:
		return lateralSteps(s, lit.Args[0], lit.Args[1], types.RelBeside)
	case types.RelLeftOf:
		return lateralSteps(s, lit.Args[0], lit.Args[1], types.RelLeftOf)
	case types.RelRightOf:
		return lateralSteps(s, lit.Args[0], lit.Args[1], types.RelRightOf)
	default:
		return math.Inf(1)
	}
}

// holdingSteps: arm travel to x's column, four actions per object stacked
// above x, one pick. Zero when already held.
func holdingSteps(s world.State, x string) float64 {
	if s.Holding == x {
		return 0
	}
	if x == types.Floor {
		return math.Inf(1)
	}
	col, h, ok := s.Find(x)
	if !ok {
		return math.Inf(1)
	}
	obstacles := len(s.Stacks[col]) - 1 - h
	return float64(abs(s.Arm-col) + unburyCost*obstacles + 1)
}

// column returns the column the cost model charges travel from: the
// object's stack, or the arm's position when the object is in the gripper.
func column(s world.State, x string) int {
	if s.Holding == x {
		return s.Arm
	}
	c, _, _ := s.Find(x)
	return c
}

// aboveSteps: get hold of x, carry it to y's column, drop.
func aboveSteps(s world.State, x, y string) float64 {
	if x == types.Floor || x == y {
		return math.Inf(1)
	}
	hold := holdingSteps(s, x)
	if math.IsInf(hold, 1) {
		return hold
	}

	if y == types.Floor {
		// Not satisfied yet, so x is in the gripper: one drop.
		return hold + 1
	}

	ycol, _, placed := s.Find(y)
	if !placed {
		if s.Holding != y {
			return math.Inf(1)
		}
		// y is in the gripper; it must land before x can go above it.
		return hold + 2
	}
	return hold + float64(abs(column(s, x)-ycol)) + 1
}

// onTopSteps: clear y, get hold of x, carry it over, drop. Clearing the
// destination charges pick and drop per obstacle and nothing else; arm
// travel is charged once, through the holding and carry terms, so no move
// is counted twice.
func onTopSteps(s world.State, x, y string) float64 {
	if x == types.Floor || x == y {
		return math.Inf(1)
	}
	hold := holdingSteps(s, x)
	if math.IsInf(hold, 1) {
		return hold
	}
	xcol := column(s, x)

	if y == types.Floor {
		// x needs a stack bottom: the cheapest column to empty,
		// found by scanning from x's position outward.
		best := math.Inf(1)
		for c, stack := range s.Stacks {
			occupants := len(stack)
			if oc, _, ok := s.Find(x); ok && oc == c {
				occupants--
			}
			cost := float64(clearCost*occupants + abs(xcol-c))
			if cost < best {
				best = cost
			}
		}
		return hold + best + 1
	}

	ycol, yh, placed := s.Find(y)
	if !placed {
		if s.Holding != y {
			return math.Inf(1)
		}
		return hold + 2
	}
	clear := float64(clearCost * (len(s.Stacks[ycol]) - 1 - yh))
	return hold + clear + float64(abs(xcol-ycol)) + 1
}

// lateralSteps: beside, leftof and rightof can be satisfied by moving
// either endpoint, so the bound is the min over both choices; anything
// else would overestimate plans that move the other object.
func lateralSteps(s world.State, x, y string, rel types.Relation) float64 {
	if x == types.Floor || y == types.Floor || x == y {
		return math.Inf(1)
	}

	var xTargets, yTargets []int
	switch rel {
	case types.RelLeftOf:
		xTargets, yTargets = []int{-1}, []int{+1}
	case types.RelRightOf:
		xTargets, yTargets = []int{+1}, []int{-1}
	default: // beside
		xTargets, yTargets = []int{-1, +1}, []int{-1, +1}
	}

	best := math.Min(
		placeNextTo(s, x, y, xTargets),
		placeNextTo(s, y, x, yTargets),
	)
	if !math.IsInf(best, 1) {
		return best
	}

	// Both single-mover targets fell off the board (x pinned against one
	// edge, y against the other). A plan may still exist by moving both
	// objects inward: handle the dearer one fully, plus the other's pick
	// and drop.
	hx, hy := holdingSteps(s, x), holdingSteps(s, y)
	if math.IsInf(hx, 1) || math.IsInf(hy, 1) {
		return math.Inf(1)
	}
	return math.Max(hx, hy) + 3
}

// placeNextTo bounds the cost of moving mover into a column adjacent to
// anchor (anchor's column plus each offset).
func placeNextTo(s world.State, mover, anchor string, offsets []int) float64 {
	hold := holdingSteps(s, mover)
	if math.IsInf(hold, 1) {
		return hold
	}

	acol, _, placed := s.Find(anchor)
	if !placed {
		if s.Holding != anchor {
			return math.Inf(1)
		}
		// Anchor is in the gripper; its landing column is unknown, so
		// only the final drop of mover is certain.
		return hold + 1
	}

	mcol := column(s, mover)
	best := math.Inf(1)
	for _, off := range offsets {
		target := acol + off
		if target < 0 || target >= len(s.Stacks) {
			continue
		}
		cost := hold + float64(abs(mcol-target)) + 1
		if cost < best {
			best = cost
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
