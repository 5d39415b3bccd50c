// Package physics implements the physical-law predicate of the blocks
// world: which object may rest on, or inside, which other object. The
// default implementation derives the pairwise support and containment
// relations from a Datalog rule set evaluated by google/mangle at
// construction time, then answers the hot-path Legal queries from
// materialized in-memory sets so the search loop never re-enters the
// Datalog engine.
package physics

import (
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"blocksmith/internal/types"
)

// Laws answers legality queries between two concrete objects. For the
// binary relations a is the subject and b the reference object; for
// holding, b is empty. Implementations must be safe for concurrent reads.
type Laws interface {
	Legal(rel types.Relation, a, b string) bool
}

// pairSet records directed object pairs: set[base][top] or set[box][content].
type pairSet map[string]map[string]bool

func (p pairSet) add(outer, inner string) {
	m, ok := p[outer]
	if !ok {
		m = make(map[string]bool)
		p[outer] = m
	}
	m[inner] = true
}

func (p pairSet) has(outer, inner string) bool {
	return p[outer][inner]
}

// RuleLaws is the Mangle-backed Laws implementation.
type RuleLaws struct {
	catalog  types.Catalog
	supports pairSet // base -> top, base is never a box
	contains pairSet // box -> content
}

// NewLaws evaluates the embedded rule set against the object catalog and
// materializes the derived relations. extraRules, if non-empty, is
// appended to the embedded program so deployments can add laws without
// rebuilding.
func NewLaws(catalog types.Catalog, extraRules string) (*RuleLaws, error) {
	var sb strings.Builder
	sb.WriteString(lawRules)
	for id, obj := range catalog {
		fmt.Fprintf(&sb, "object(%q, /%s, /%s).\n", id, obj.Size, obj.Form)
	}
	if extraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(extraRules)
	}

	unit, err := parse.Unit(strings.NewReader(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("physics: parse rules: %w", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("physics: analyze rules: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	if _, err := engine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, fmt.Errorf("physics: evaluate rules: %w", err)
	}

	l := &RuleLaws{
		catalog:  catalog,
		supports: pairSet{},
		contains: pairSet{},
	}
	if err := materialize(store, "can_support", l.supports); err != nil {
		return nil, err
	}
	if err := materialize(store, "can_contain", l.contains); err != nil {
		return nil, err
	}
	return l, nil
}

// materialize copies one derived binary relation out of the fact store.
func materialize(store factstore.FactStore, predicate string, into pairSet) error {
	pred := ast.PredicateSym{Symbol: predicate, Arity: 2}
	return store.GetFacts(ast.NewQuery(pred), func(atom ast.Atom) error {
		outer, ok1 := stringTerm(atom.Args[0])
		inner, ok2 := stringTerm(atom.Args[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("physics: non-string argument in %s fact %v", predicate, atom)
		}
		into.add(outer, inner)
		return nil
	})
}

func stringTerm(term ast.BaseTerm) (string, bool) {
	c, ok := term.(ast.Constant)
	if !ok || c.Type != ast.StringType {
		return "", false
	}
	return c.Symbol, true
}

// Legal implements Laws.
func (l *RuleLaws) Legal(rel types.Relation, a, b string) bool {
	return legal(l.catalog, l.supports, l.contains, rel, a, b)
}

// legal is the shared decision procedure over materialized tables.
func legal(catalog types.Catalog, supports, contains pairSet, rel types.Relation, a, b string) bool {
	if a == types.Floor {
		// The floor stays where it is.
		return false
	}

	switch rel {
	case types.RelHolding:
		_, ok := catalog[a]
		return ok

	case types.RelOnTop, types.RelInside:
		if a == b {
			return false
		}
		if b == types.Floor {
			// Everything rests on the floor.
			_, ok := catalog[a]
			return ok
		}
		bo, ok := catalog[b]
		if !ok || !catalog.Has(a) {
			return false
		}
		if bo.Form == types.FormBox {
			return contains.has(b, a)
		}
		return supports.has(b, a)

	case types.RelAbove, types.RelUnder:
		if a == b {
			return false
		}
		if rel == types.RelAbove && b == types.Floor {
			return catalog.Has(a)
		}
		return catalog.Has(a) && catalog.Has(b) && b != types.Floor

	case types.RelBeside, types.RelLeftOf, types.RelRightOf:
		// Lateral relations are between placed objects; the floor has
		// no column of its own.
		return a != b && b != types.Floor && catalog.Has(a) && catalog.Has(b)

	default:
		return false
	}
}
