// Package goal evaluates DNF goal formulas against world states. The
// evaluator is total: unknown identifiers, ill-formed literals and
// out-of-range relation values evaluate to "not satisfied", never panic.
package goal

import (
	"blocksmith/internal/types"
	"blocksmith/internal/world"
)

// Satisfied reports whether the state satisfies the formula: at least one
// conjunction whose every literal holds.
func Satisfied(f types.Formula, s world.State) bool {
	for _, conj := range f {
		if allHold(conj, s) {
			return true
		}
	}
	return false
}

func allHold(c types.Conjunction, s world.State) bool {
	for _, lit := range c {
		if !Holds(lit, s) {
			return false
		}
	}
	return true
}

// Holds reports whether a single literal, including its polarity, is true
// in the state.
func Holds(lit types.Literal, s world.State) bool {
	truth := relationHolds(lit, s)
	if !lit.Polarity {
		return !truth
	}
	return truth
}

// relationHolds checks the positive relation. The floor is stack-local:
// ontop(x, floor) means x sits at the bottom of whichever stack holds it.
func relationHolds(lit types.Literal, s world.State) bool {
	if !lit.WellFormed() {
		return false
	}

	switch lit.Relation {
	case types.RelHolding:
		x := lit.Args[0]
		return x != "" && s.Holding == x

	case types.RelOnTop, types.RelInside:
		x, y := lit.Args[0], lit.Args[1]
		xc, xh, ok := s.Find(x)
		if !ok {
			return false
		}
		if y == types.Floor {
			return xh == 0
		}
		yc, yh, ok := s.Find(y)
		return ok && xc == yc && xh == yh+1

	case types.RelAbove:
		return stacked(s, lit.Args[0], lit.Args[1])

	case types.RelUnder:
		return stacked(s, lit.Args[1], lit.Args[0])

	case types.RelBeside:
		d, ok := columnDelta(s, lit.Args[0], lit.Args[1])
		return ok && (d == 1 || d == -1)

	case types.RelLeftOf:
		d, ok := columnDelta(s, lit.Args[0], lit.Args[1])
		return ok && d == -1

	case types.RelRightOf:
		d, ok := columnDelta(s, lit.Args[0], lit.Args[1])
		return ok && d == 1

	default:
		return false
	}
}

// stacked reports whether upper sits strictly above lower in one stack.
// lower == floor degenerates to "upper is placed in some stack".
func stacked(s world.State, upper, lower string) bool {
	uc, uh, ok := s.Find(upper)
	if !ok {
		return false
	}
	if lower == types.Floor {
		return true
	}
	lc, lh, ok := s.Find(lower)
	return ok && uc == lc && uh > lh
}

// columnDelta returns x's column minus y's column. ok is false when either
// object is unplaced (held, floor, unknown).
func columnDelta(s world.State, x, y string) (int, bool) {
	xc, _, ok := s.Find(x)
	if !ok {
		return 0, false
	}
	yc, _, ok := s.Find(y)
	if !ok {
		return 0, false
	}
	return xc - yc, true
}
