// Package search implements a generic best-first (A*) engine over an
// implicit graph. The engine knows nothing about the blocks world: callers
// supply the graph expansion function, the goal test and the heuristic.
//
// Nodes are deduplicated by structural identity (Node.Key), never by
// pointer identity, so two independently constructed equal states collapse
// into one search node. All tables (frontier, g-scores, closed set,
// predecessors) are local to one Run call and discarded on return.
package search

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"time"
)

// Node is anything with a canonical structural identity string.
type Node interface {
	Key() string
}

// Edge is a weighted transition between two nodes. Cost must be
// non-negative; the engine rejects negative edges.
type Edge[N Node] struct {
	From N
	To   N
	Cost float64
}

// Graph exposes the outgoing edges of a node. This is the only way the
// engine discovers successors; the graph is never materialized.
type Graph[N Node] interface {
	OutgoingEdges(node N) []Edge[N]
}

// Result is a successful search outcome: the node sequence from start to a
// goal-satisfying node (start included) and the accumulated cost.
type Result[N Node] struct {
	Path     []N
	Cost     float64
	Expanded int
	Elapsed  time.Duration
}

var (
	// ErrTimeout means the wall-clock budget ran out before a goal was
	// popped. The goal may still be reachable; callers must not report
	// this as unsatisfiability.
	ErrTimeout = errors.New("search: timed out")

	// ErrExhausted means the frontier emptied with no goal found: the
	// goal is unreachable from the start node.
	ErrExhausted = errors.New("search: frontier exhausted")
)

// item is one frontier entry. seq breaks f-ties by insertion order so runs
// are deterministic for identical inputs.
type item[N Node] struct {
	node  N
	g     float64
	f     float64
	seq   int
	index int
}

type frontier[N Node] []*item[N]

func (q frontier[N]) Len() int { return len(q) }

func (q frontier[N]) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier[N]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontier[N]) Push(x any) {
	it := x.(*item[N])
	it.index = len(*q)
	*q = append(*q, it)
}

func (q *frontier[N]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// Run performs A* from start until isGoal holds for a popped node, the
// frontier empties, or timeout elapses. timeout <= 0 means no limit; the
// deadline is checked once per pop, not mid-expansion.
//
// The returned path is minimum-cost provided heuristic never overestimates
// the true remaining cost. The engine does not verify admissibility.
func Run[N Node](g Graph[N], start N, isGoal func(N) bool, heuristic func(N) float64, timeout time.Duration) (*Result[N], error) {
	began := time.Now()

	open := &frontier[N]{}
	heap.Init(open)

	gScore := map[string]float64{}
	cameFrom := map[string]string{}
	byKey := map[string]N{}
	closed := map[string]struct{}{}

	seq := 0
	startKey := start.Key()
	gScore[startKey] = 0
	byKey[startKey] = start
	heap.Push(open, &item[N]{node: start, g: 0, f: heuristic(start), seq: seq})

	expanded := 0
	for open.Len() > 0 {
		if timeout > 0 && time.Since(began) >= timeout {
			return nil, ErrTimeout
		}

		cur := heap.Pop(open).(*item[N])
		key := cur.node.Key()

		// Stale frontier entry: a cheaper path to this node was found
		// after it was pushed.
		if best, ok := gScore[key]; ok && cur.g > best {
			continue
		}
		if _, done := closed[key]; done {
			continue
		}

		if isGoal(cur.node) {
			return &Result[N]{
				Path:     reconstruct(byKey, cameFrom, startKey, key),
				Cost:     cur.g,
				Expanded: expanded,
				Elapsed:  time.Since(began),
			}, nil
		}

		closed[key] = struct{}{}
		expanded++

		for _, e := range g.OutgoingEdges(cur.node) {
			if e.Cost < 0 {
				return nil, fmt.Errorf("search: negative edge cost %v out of node %s", e.Cost, key)
			}
			nextKey := e.To.Key()
			tentative := cur.g + e.Cost
			if prev, seen := gScore[nextKey]; seen && tentative >= prev {
				continue
			}

			h := heuristic(e.To)
			if math.IsInf(h, 1) {
				// Admissible heuristic: +Inf means no finite-cost
				// path to the goal passes through this node.
				continue
			}

			// Strictly better g: re-open if it was closed.
			delete(closed, nextKey)
			gScore[nextKey] = tentative
			cameFrom[nextKey] = key
			byKey[nextKey] = e.To
			seq++
			heap.Push(open, &item[N]{node: e.To, g: tentative, f: tentative + h, seq: seq})
		}
	}

	return nil, ErrExhausted
}

// reconstruct walks predecessor links from goal back to start and reverses.
func reconstruct[N Node](byKey map[string]N, cameFrom map[string]string, startKey, goalKey string) []N {
	var rev []N
	for key := goalKey; ; {
		rev = append(rev, byKey[key])
		if key == startKey {
			break
		}
		key = cameFrom[key]
	}

	path := make([]N, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}
