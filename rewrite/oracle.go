package rewrite

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// neighborFunc returns the ids directly reachable from id in one hop, in
// either traversal direction (forward via outgoing transitions, backward
// via incoming).
type neighborFunc func(id int) []int

func forwardNeighbors[S, T any](g *core.Graph[S, T]) neighborFunc {
	return func(id int) []int {
		out := g.Outgoing(id)
		ids := make([]int, len(out))
		for i, t := range out {
			ids[i] = t.Target
		}

		return ids
	}
}

func backwardNeighbors[S, T any](g *core.Graph[S, T]) neighborFunc {
	return func(id int) []int {
		in := g.Incoming(id)
		ids := make([]int, len(in))
		for i, t := range in {
			ids[i] = t.Source
		}

		return ids
	}
}

// barrierReach is a DFS from start that records every node it visits
// (including barrier nodes) but never expands past a barrier node.
func barrierReach(start int, barrier map[int]bool, neighbors neighborFunc) map[int]bool {
	visited := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if barrier[cur] {
			continue
		}
		for _, next := range neighbors(cur) {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}

	return visited
}

// SkippableStructure implements §4.4.6's oracle in the forward direction
// (used by the skip-fork rewriter): does a direct-or-bypassable structure
// exist between source and target, with F barred from participating.
func SkippableStructure[S, T any](g *core.Graph[S, T], source, target int, forbidden map[int]bool) (bool, error) {
	return skippableStructureDirected(source, target, forbidden, forwardNeighbors(g), backwardNeighbors(g))
}

// SkippableStructureReversed implements the same oracle run on the reversed
// graph (used by the skip-join rewriter, the dual of skip-fork): Reach
// walks backward from source, Coreach walks forward from target.
func SkippableStructureReversed[S, T any](g *core.Graph[S, T], source, target int, forbidden map[int]bool) (bool, error) {
	return skippableStructureDirected(source, target, forbidden, backwardNeighbors(g), forwardNeighbors(g))
}

// skippableStructureDirected is §4.4.6 parameterized by which neighbor
// function plays "forward" (used to compute Reach from source and the
// successor side of the final closure check) and which plays "backward"
// (Coreach from target, predecessor side of the closure check).
func skippableStructureDirected(source, target int, forbidden map[int]bool, fwd, bwd neighborFunc) (bool, error) {
	if forbidden[source] || forbidden[target] {
		return false, fmt.Errorf("rewrite: forbidden set must be disjoint from source/target: %w", ErrPrecondition)
	}

	reachBarrier := copyBarrier(forbidden)
	reachBarrier[target] = true
	reachSet := barrierReach(source, reachBarrier, fwd)
	if !reachSet[target] {
		return false, nil
	}

	coreachBarrier := copyBarrier(forbidden)
	coreachBarrier[source] = true
	coreachSet := barrierReach(target, coreachBarrier, bwd)

	trim := make(map[int]bool, len(reachSet))
	for id := range reachSet {
		if coreachSet[id] {
			trim[id] = true
		}
	}

	if !trim[source] || !trim[target] {
		return false, fmt.Errorf("rewrite: trim set missing source or target: %w", ErrInvariantViolation)
	}

	if len(trim) == 2 {
		return true, nil
	}

	x := make(map[int]bool, len(trim))
	for id := range trim {
		if id == source || id == target || forbidden[id] {
			continue
		}
		x[id] = true
	}
	if len(x) == 0 {
		return false, nil
	}

	for id := range x {
		for _, pred := range bwd(id) {
			if !x[pred] && pred != source {
				return false, nil
			}
		}
		for _, succ := range fwd(id) {
			if !x[succ] && succ != target {
				return false, nil
			}
		}
	}

	return true, nil
}

func copyBarrier(src map[int]bool) map[int]bool {
	out := make(map[int]bool, len(src)+1)
	for id := range src {
		out[id] = true
	}

	return out
}
