// Package types provides the shared value types used across blocksmith
// packages: the object catalog, goal formulas, and the primitive action
// alphabet. This package exists so that world, goal, heuristic and planner
// can share definitions without import cycles. Everything here is an
// immutable value type.
package types

import (
	"fmt"
	"strings"
)

// Floor is the pseudo-object identifier for the bottom of a stack. It never
// appears inside a stack and can never be picked up.
const Floor = "floor"

// =============================================================================
// OBJECT CATALOG
// =============================================================================

// Size is the physical size class of an object.
type Size int

const (
	SizeSmall Size = iota
	SizeLarge
)

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeLarge:
		return "large"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParseSize converts a textual size (as found in world files) to a Size.
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(s) {
	case "small":
		return SizeSmall, nil
	case "large":
		return SizeLarge, nil
	default:
		return 0, fmt.Errorf("unknown size %q", s)
	}
}

// Form is the shape class of an object. The form decides which physical
// laws apply: balls roll, boxes contain, pyramids have no flat top.
type Form int

const (
	FormBrick Form = iota
	FormPlank
	FormBall
	FormBox
	FormPyramid
	FormTable
)

func (f Form) String() string {
	switch f {
	case FormBrick:
		return "brick"
	case FormPlank:
		return "plank"
	case FormBall:
		return "ball"
	case FormBox:
		return "box"
	case FormPyramid:
		return "pyramid"
	case FormTable:
		return "table"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// ParseForm converts a textual form (as found in world files) to a Form.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(s) {
	case "brick":
		return FormBrick, nil
	case "plank":
		return FormPlank, nil
	case "ball":
		return FormBall, nil
	case "box":
		return FormBox, nil
	case "pyramid":
		return FormPyramid, nil
	case "table":
		return FormTable, nil
	default:
		return 0, fmt.Errorf("unknown form %q", s)
	}
}

// Object holds the static physical attributes of one world object.
// Read-only during search.
type Object struct {
	Size  Size
	Color string
	Form  Form
}

func (o Object) String() string {
	return fmt.Sprintf("%s %s %s", o.Size, o.Color, o.Form)
}

// Catalog maps object identifiers to their static attributes.
type Catalog map[string]Object

// Has reports whether the catalog knows the given identifier.
// The floor is always known.
func (c Catalog) Has(id string) bool {
	if id == Floor {
		return true
	}
	_, ok := c[id]
	return ok
}

// =============================================================================
// GOAL FORMULAS (DNF)
// =============================================================================

// Literal is a single polarity-qualified relation instance between concrete
// object identifiers. Args has length 1 for holding and length 2 for every
// other relation.
type Literal struct {
	Polarity bool
	Relation Relation
	Args     []string
}

func (l Literal) String() string {
	neg := ""
	if !l.Polarity {
		neg = "!"
	}
	return fmt.Sprintf("%s%s(%s)", neg, l.Relation, strings.Join(l.Args, ","))
}

// WellFormed reports whether the literal's argument count matches its
// relation's arity. Ill-formed literals are never satisfiable.
func (l Literal) WellFormed() bool {
	return len(l.Args) == l.Relation.Arity()
}

// Conjunction is an ordered set of literals that must all hold at once.
type Conjunction []Literal

func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

// Formula is a goal in disjunctive normal form: satisfying any one
// conjunction satisfies the formula.
type Formula []Conjunction

func (f Formula) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// =============================================================================
// PRIMITIVE ACTIONS
// =============================================================================

// Action is one primitive arm operation. The four values below are the
// complete alphabet; the planner never emits anything else.
type Action string

const (
	ActionLeft  Action = "left"
	ActionRight Action = "right"
	ActionPick  Action = "pick"
	ActionDrop  Action = "drop"
)
