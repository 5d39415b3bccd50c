// Package world defines the blocks-world state representation and the
// one-step transition model the planner searches over. States are
// immutable by convention: every transition builds a fresh state with
// freshly allocated stacks, never aliasing the substructures of its
// parent, so the search engine's tables can hold states safely.
package world

import (
	"fmt"
	"strconv"
	"strings"

	"blocksmith/internal/types"
)

// State is one configuration of the world: the stacks (each ordered bottom
// to top), the column the arm is over, and the object held by the arm
// ("" when the gripper is empty). Every object identifier appears exactly
// once, either in one stack or in Holding.
type State struct {
	Stacks  [][]string
	Arm     int
	Holding string
}

// Key returns the canonical structural identity of the state. Two states
// with equal stacks, arm position and held object produce equal keys
// regardless of how they were constructed.
func (s State) Key() string {
	var sb strings.Builder
	for i, stack := range s.Stacks {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strings.Join(stack, ","))
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(s.Arm))
	sb.WriteByte('|')
	sb.WriteString(s.Holding)
	return sb.String()
}

func (s State) String() string { return s.Key() }

// Find returns the column and height of an object, or ok=false when the
// object is not placed in any stack (held, floor, or unknown).
func (s State) Find(id string) (col, height int, ok bool) {
	for c, stack := range s.Stacks {
		for h, obj := range stack {
			if obj == id {
				return c, h, true
			}
		}
	}
	return 0, 0, false
}

// Validate checks the structural invariants against an object catalog:
// arm in range, every identifier known, every identifier placed exactly
// once, the floor nowhere.
func (s State) Validate(catalog types.Catalog) error {
	if len(s.Stacks) == 0 {
		return fmt.Errorf("world: no stacks")
	}
	if s.Arm < 0 || s.Arm >= len(s.Stacks) {
		return fmt.Errorf("world: arm position %d out of range [0,%d)", s.Arm, len(s.Stacks))
	}

	seen := map[string]bool{}
	note := func(id string) error {
		if id == types.Floor {
			return fmt.Errorf("world: the floor cannot be placed")
		}
		if _, ok := catalog[id]; !ok {
			return fmt.Errorf("world: unknown object %q", id)
		}
		if seen[id] {
			return fmt.Errorf("world: object %q appears twice", id)
		}
		seen[id] = true
		return nil
	}

	for _, stack := range s.Stacks {
		for _, id := range stack {
			if err := note(id); err != nil {
				return err
			}
		}
	}
	if s.Holding != "" {
		if err := note(s.Holding); err != nil {
			return err
		}
	}
	return nil
}

// cloneStacks deep-copies the stack structure. Transitions always go
// through this; sharing a column slice between two states would let the
// engine's closed set observe a mutation.
func (s State) cloneStacks() [][]string {
	stacks := make([][]string, len(s.Stacks))
	for i, stack := range s.Stacks {
		c := make([]string, len(stack))
		copy(c, stack)
		stacks[i] = c
	}
	return stacks
}

// moveLeft returns the state with the arm one column to the left.
// Caller guarantees Arm > 0.
func (s State) moveLeft() State {
	return State{Stacks: s.cloneStacks(), Arm: s.Arm - 1, Holding: s.Holding}
}

// moveRight returns the state with the arm one column to the right.
// Caller guarantees Arm < len(Stacks)-1.
func (s State) moveRight() State {
	return State{Stacks: s.cloneStacks(), Arm: s.Arm + 1, Holding: s.Holding}
}

// pick returns the state with the top of the current column gripped.
// Caller guarantees the gripper is empty and the column non-empty.
func (s State) pick() State {
	stacks := s.cloneStacks()
	col := stacks[s.Arm]
	top := col[len(col)-1]
	stacks[s.Arm] = col[:len(col)-1]
	return State{Stacks: stacks, Arm: s.Arm, Holding: top}
}

// drop returns the state with the held object released onto the current
// column. Caller guarantees the gripper is full and the drop is legal.
func (s State) drop() State {
	stacks := s.cloneStacks()
	stacks[s.Arm] = append(stacks[s.Arm], s.Holding)
	return State{Stacks: stacks, Arm: s.Arm, Holding: ""}
}
