package world

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"blocksmith/internal/physics"
	"blocksmith/internal/types"
)

func testCatalog() types.Catalog {
	return types.Catalog{
		"a": {Size: types.SizeSmall, Color: "red", Form: types.FormBrick},
		"b": {Size: types.SizeSmall, Color: "blue", Form: types.FormBrick},
		"k": {Size: types.SizeLarge, Color: "yellow", Form: types.FormBox},
		"o": {Size: types.SizeSmall, Color: "white", Form: types.FormBall},
	}
}

func testModel() *Model {
	return NewModel(physics.NewStaticLaws(testCatalog()))
}

func TestStateKey(t *testing.T) {
	s1 := State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0}
	s2 := State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0}
	if s1.Key() != s2.Key() {
		t.Fatalf("equal states have different keys: %q vs %q", s1.Key(), s2.Key())
	}

	distinct := []State{
		{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0},
		{Stacks: [][]string{{"a"}, {"b"}}, Arm: 0},
		{Stacks: [][]string{{"b", "a"}, {}}, Arm: 0},
		{Stacks: [][]string{{"a", "b"}, {}}, Arm: 1},
		{Stacks: [][]string{{"a"}, {}}, Arm: 0, Holding: "b"},
	}
	seen := map[string]int{}
	for i, s := range distinct {
		if j, dup := seen[s.Key()]; dup {
			t.Fatalf("states %d and %d share key %q", i, j, s.Key())
		}
		seen[s.Key()] = i
	}
}

func TestValidate(t *testing.T) {
	catalog := testCatalog()

	good := State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 1, Holding: "o"}
	if err := good.Validate(catalog); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}

	cases := map[string]State{
		"arm out of range": {Stacks: [][]string{{"a"}}, Arm: 3},
		"duplicate object": {Stacks: [][]string{{"a"}, {"a"}}, Arm: 0},
		"held and stacked": {Stacks: [][]string{{"a"}}, Arm: 0, Holding: "a"},
		"unknown object":   {Stacks: [][]string{{"zz"}}, Arm: 0},
		"floor in a stack": {Stacks: [][]string{{types.Floor}}, Arm: 0},
		"no stacks":        {Arm: 0},
	}
	for name, s := range cases {
		if err := s.Validate(catalog); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSuccessorsArmMoves(t *testing.T) {
	m := testModel()
	s := State{Stacks: [][]string{{}, {}, {}}, Arm: 1}

	succ := m.Successors(s)
	if len(succ) != 2 {
		t.Fatalf("got %d successors, want 2 (left, right): %v", len(succ), succ)
	}
	if succ[0].Arm != 0 || succ[1].Arm != 2 {
		t.Fatalf("successors %v, want arm 0 then arm 2", succ)
	}

	left := State{Stacks: [][]string{{}, {}}, Arm: 0}
	if got := m.Successors(left); len(got) != 1 || got[0].Arm != 1 {
		t.Fatalf("edge column should only move right, got %v", got)
	}
}

func TestSuccessorsPickAndDrop(t *testing.T) {
	m := testModel()

	s := State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0}
	var picked *State
	for _, n := range m.Successors(s) {
		if n.Holding != "" {
			n := n
			picked = &n
		}
	}
	if picked == nil {
		t.Fatal("expected a pick successor")
	}
	if picked.Holding != "b" {
		t.Fatalf("picked %q, want top object b", picked.Holding)
	}
	if diff := cmp.Diff([][]string{{"a"}, {}}, picked.Stacks, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("stacks after pick (-want +got):\n%s", diff)
	}

	// Holding a ball over a brick column: drop is illegal, only arm moves.
	held := State{Stacks: [][]string{{"a"}, {}}, Arm: 0, Holding: "o"}
	for _, n := range m.Successors(held) {
		if n.Holding == "" {
			t.Fatalf("ball must not drop onto a brick: %v", n)
		}
	}

	// Over the empty column the floor accepts it.
	held.Arm = 1
	foundDrop := false
	for _, n := range m.Successors(held) {
		if n.Holding == "" {
			foundDrop = true
			if diff := cmp.Diff([][]string{{"a"}, {"o"}}, n.Stacks, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("stacks after drop (-want +got):\n%s", diff)
			}
		}
	}
	if !foundDrop {
		t.Fatal("expected a drop successor over the empty column")
	}
}

func TestTransitionsDoNotAliasParent(t *testing.T) {
	m := testModel()
	s := State{Stacks: [][]string{{"a", "b"}, {}}, Arm: 0}
	key := s.Key()

	for _, n := range m.Successors(s) {
		if len(n.Stacks[0]) > 0 {
			n.Stacks[0][0] = "mutated"
		}
	}
	if s.Key() != key {
		t.Fatal("successor mutation leaked into parent state")
	}
}

func TestClassify(t *testing.T) {
	s := State{Stacks: [][]string{{"a"}, {}}, Arm: 0}
	m := testModel()

	for _, a := range []types.Action{types.ActionRight, types.ActionPick} {
		next, err := m.Apply(s, a)
		if err != nil {
			t.Fatalf("Apply(%s): %v", a, err)
		}
		got, err := Classify(s, next)
		if err != nil {
			t.Fatalf("Classify after %s: %v", a, err)
		}
		if got != a {
			t.Fatalf("Classify = %s, want %s", got, a)
		}
	}

	// Teleporting two columns is not a primitive action.
	far := State{Stacks: [][]string{{"a"}, {}}, Arm: 2}
	if _, err := Classify(s, far); err == nil {
		t.Fatal("expected inconsistency error")
	}
}

func TestApplyRejectsIllegalActions(t *testing.T) {
	m := testModel()
	s := State{Stacks: [][]string{{"a"}, {}}, Arm: 0}

	if _, err := m.Apply(s, types.ActionLeft); err == nil {
		t.Fatal("left from column 0 should fail")
	}
	if _, err := m.Apply(s, types.ActionDrop); err == nil {
		t.Fatal("drop with empty gripper should fail")
	}

	empty := State{Stacks: [][]string{{}, {}}, Arm: 0}
	if _, err := m.Apply(empty, types.ActionPick); err == nil {
		t.Fatal("pick from empty column should fail")
	}

	held := State{Stacks: [][]string{{"a"}, {}}, Arm: 0, Holding: "o"}
	if _, err := m.Apply(held, types.ActionDrop); err == nil {
		t.Fatal("dropping a ball on a brick should fail")
	}
}
