package types

import (
	"fmt"
	"strings"
)

// Relation is the closed set of spatial relations a goal literal may use.
// Relations are an enum rather than raw strings, so evaluator and heuristic
// switch over known values; out-of-range values still hit a default arm
// that treats the literal as unsatisfiable.
type Relation int

const (
	// RelHolding is the unary relation "the arm is holding x".
	RelHolding Relation = iota
	// RelOnTop means x rests directly on y (y is not a box).
	RelOnTop
	// RelInside means x rests directly in the box y. At the state-check
	// level it is identical to RelOnTop; the distinction is resolved by
	// the physical laws when y's form is known.
	RelInside
	// RelAbove means x is somewhere above y in the same stack.
	RelAbove
	// RelUnder means x is somewhere below y in the same stack.
	RelUnder
	// RelBeside means x and y occupy adjacent stacks.
	RelBeside
	// RelLeftOf means x's stack is exactly one left of y's.
	RelLeftOf
	// RelRightOf means x's stack is exactly one right of y's.
	RelRightOf
)

func (r Relation) String() string {
	switch r {
	case RelHolding:
		return "holding"
	case RelOnTop:
		return "ontop"
	case RelInside:
		return "inside"
	case RelAbove:
		return "above"
	case RelUnder:
		return "under"
	case RelBeside:
		return "beside"
	case RelLeftOf:
		return "leftof"
	case RelRightOf:
		return "rightof"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Arity returns the number of object arguments the relation takes.
func (r Relation) Arity() int {
	if r == RelHolding {
		return 1
	}
	return 2
}

// ParseRelation converts a relation name to its enum value.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(s) {
	case "holding":
		return RelHolding, nil
	case "ontop", "on":
		return RelOnTop, nil
	case "inside", "in":
		return RelInside, nil
	case "above":
		return RelAbove, nil
	case "under", "below":
		return RelUnder, nil
	case "beside":
		return RelBeside, nil
	case "leftof":
		return RelLeftOf, nil
	case "rightof":
		return RelRightOf, nil
	default:
		return 0, fmt.Errorf("unknown relation %q", s)
	}
}
