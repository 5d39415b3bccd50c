package heuristic

import (
	"math"
	"testing"

	"blocksmith/internal/goal"
	"blocksmith/internal/physics"
	"blocksmith/internal/types"
	"blocksmith/internal/world"
)

func testCatalog() types.Catalog {
	return types.Catalog{
		"a": {Size: types.SizeSmall, Color: "red", Form: types.FormBrick},
		"b": {Size: types.SizeSmall, Color: "blue", Form: types.FormBrick},
		"c": {Size: types.SizeSmall, Color: "green", Form: types.FormBrick},
		"k": {Size: types.SizeLarge, Color: "yellow", Form: types.FormBox},
		"o": {Size: types.SizeSmall, Color: "white", Form: types.FormBall},
		"p": {Size: types.SizeSmall, Color: "purple", Form: types.FormPyramid},
	}
}

func lit(rel types.Relation, args ...string) types.Literal {
	return types.Literal{Polarity: true, Relation: rel, Args: args}
}

func formula(lits ...types.Literal) types.Formula {
	return types.Formula{types.Conjunction(lits)}
}

func TestEstimateZeroWhenSatisfied(t *testing.T) {
	s := world.State{Stacks: [][]string{{"a", "b"}, {"k"}, {}}, Arm: 0}

	satisfied := []types.Formula{
		formula(lit(types.RelOnTop, "b", "a")),
		formula(lit(types.RelOnTop, "a", types.Floor)),
		formula(lit(types.RelBeside, "b", "k")),
		{
			{lit(types.RelOnTop, "k", "a")}, // false disjunct
			{lit(types.RelAbove, "b", "a")}, // true disjunct
		},
	}
	for _, f := range satisfied {
		if got := Estimate(s, f); got != 0 {
			t.Fatalf("Estimate(%s) = %v, want 0", f, got)
		}
	}
}

func TestEstimateConcreteValues(t *testing.T) {
	cases := []struct {
		name string
		s    world.State
		f    types.Formula
		want float64
	}{
		{
			// pick b, move right, drop.
			name: "unstack to floor",
			s:    world.State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0},
			f:    formula(lit(types.RelOnTop, "b", types.Floor)),
			want: 3,
		},
		{
			// travel one column, pick.
			name: "grab exposed object",
			s:    world.State{Stacks: [][]string{{"a"}, {}}, Arm: 1},
			f:    formula(lit(types.RelHolding, "a")),
			want: 2,
		},
		{
			// b buries a: four actions to clear, then pick.
			name: "grab buried object",
			s:    world.State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0},
			f:    formula(lit(types.RelHolding, "a")),
			want: 5,
		},
		{
			// pick a (1), clear k off b (pick and drop only, its aside
			// moves ride along with the carry), carry one column, drop.
			name: "stack under one obstacle",
			s:    world.State{Stacks: [][]string{{"a"}, {"b", "k"}}, Arm: 0},
			f:    formula(lit(types.RelOnTop, "a", "b")),
			want: 5,
		},
		{
			// held object one drop away from being above anything placed.
			name: "drop held above",
			s:    world.State{Stacks: [][]string{{"a"}, {}}, Arm: 0, Holding: "b"},
			f:    formula(lit(types.RelAbove, "b", "a")),
			want: 1,
		},
		{
			// breaking a true relation needs at least one action.
			name: "negated satisfied literal",
			s:    world.State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0},
			f: formula(types.Literal{
				Relation: types.RelOnTop, Args: []string{"b", "a"},
			}),
			want: 1,
		},
		{
			name: "cheapest disjunct wins",
			s:    world.State{Stacks: [][]string{{"a"}, {"b"}, {}}, Arm: 0},
			f: types.Formula{
				{lit(types.RelHolding, "b")}, // 2: travel, pick
				{lit(types.RelHolding, "a")}, // 1: pick
			},
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Estimate(tc.s, tc.f); got != tc.want {
				t.Fatalf("Estimate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEstimateInfeasibleGoals(t *testing.T) {
	s := world.State{Stacks: [][]string{{"a"}, {"b"}}, Arm: 0}

	infeasible := []types.Formula{
		formula(lit(types.RelOnTop, "a", "a")),
		formula(lit(types.RelHolding, types.Floor)),
		formula(lit(types.RelOnTop, types.Floor, "a")),
		formula(lit(types.RelBeside, "a", types.Floor)),
		formula(lit(types.RelHolding, "zz")),
		{}, // empty DNF has no satisfiable disjunct
	}
	for _, f := range infeasible {
		if got := Estimate(s, f); !math.IsInf(got, 1) {
			t.Fatalf("Estimate(%s) = %v, want +Inf", f, got)
		}
	}
}

// bfsPlanLength finds the true optimal plan length by uninformed search.
// ok is false when no plan exists within the depth limit.
func bfsPlanLength(m *world.Model, start world.State, f types.Formula, limit int) (int, bool) {
	type entry struct {
		s world.State
		d int
	}
	visited := map[string]bool{start.Key(): true}
	queue := []entry{{start, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if goal.Satisfied(f, cur.s) {
			return cur.d, true
		}
		if cur.d == limit {
			continue
		}
		for _, next := range m.Successors(cur.s) {
			if !visited[next.Key()] {
				visited[next.Key()] = true
				queue = append(queue, entry{next, cur.d + 1})
			}
		}
	}
	return 0, false
}

// reachable collects every state within depth steps of start.
func reachable(m *world.Model, start world.State, depth int) []world.State {
	visited := map[string]bool{start.Key(): true}
	frontier := []world.State{start}
	all := []world.State{start}
	for d := 0; d < depth; d++ {
		var next []world.State
		for _, s := range frontier {
			for _, n := range m.Successors(s) {
				if !visited[n.Key()] {
					visited[n.Key()] = true
					next = append(next, n)
					all = append(all, n)
				}
			}
		}
		frontier = next
	}
	return all
}

// The estimate must never exceed the true optimal plan length, from any
// reachable state. Exhaustively checked over small worlds.
func TestEstimateAdmissible(t *testing.T) {
	m := world.NewModel(physics.NewStaticLaws(testCatalog()))

	scenarios := []struct {
		name  string
		start world.State
		f     types.Formula
	}{
		{
			"unstack to floor",
			world.State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0},
			formula(lit(types.RelOnTop, "b", types.Floor)),
		},
		{
			"brick into box",
			world.State{Stacks: [][]string{{"a"}, {"k"}, {}}, Arm: 2},
			formula(lit(types.RelInside, "a", "k")),
		},
		{
			"restack under obstacle",
			world.State{Stacks: [][]string{{"a", "b"}, {"k"}, {}}, Arm: 1},
			formula(lit(types.RelOnTop, "a", "k")),
		},
		{
			// Both the carried object and its destination are buried; the
			// cleared obstacles can be parked in columns the arm crosses
			// anyway, so only their picks and drops are certain.
			"obstacles on both stacks",
			world.State{Stacks: [][]string{{"b", "c"}, {}, {"a", "p"}}, Arm: 0},
			formula(lit(types.RelOnTop, "a", "b")),
		},
		{
			"lateral placement",
			world.State{Stacks: [][]string{{"a"}, {}, {"b"}}, Arm: 0},
			formula(lit(types.RelBeside, "a", "b")),
		},
		{
			"ordered columns",
			world.State{Stacks: [][]string{{"b"}, {}, {"a"}}, Arm: 1},
			formula(lit(types.RelLeftOf, "a", "b")),
		},
		{
			"grab the ball",
			world.State{Stacks: [][]string{{"o"}, {"a"}, {}}, Arm: 2, Holding: "b"},
			formula(lit(types.RelHolding, "o")),
		},
		{
			"stack above",
			world.State{Stacks: [][]string{{"a"}, {"b"}, {}}, Arm: 0},
			formula(lit(types.RelAbove, "b", "a")),
		},
	}

	const depth = 5
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			for _, s := range reachable(m, sc.start, depth) {
				truth, ok := bfsPlanLength(m, s, sc.f, 12)
				if !ok {
					continue
				}
				est := Estimate(s, sc.f)
				if est > float64(truth) {
					t.Fatalf("state %s: estimate %v exceeds optimal plan length %d",
						s.Key(), est, truth)
				}
				if est < 0 {
					t.Fatalf("state %s: negative estimate %v", s.Key(), est)
				}
			}
		})
	}
}
