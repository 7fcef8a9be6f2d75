package match

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/core"
)

// BonusHook adds a context-specific contribution to the brute-force
// objective for each pair in the fixed set (§4.2.3). NoBonus is the plain
// GLTS policy; the LTS variant adds 1 per pair of states that are both
// initial on each side.
type BonusHook[S, T any] func(l, r *core.Graph[S, T], lID, rID int) float64

// NoBonus contributes nothing.
func NoBonus[S, T any]() BonusHook[S, T] {
	return func(*core.Graph[S, T], *core.Graph[S, T], int, int) float64 { return 0 }
}

// LTSBonus rewards a pair of states that are both initial.
func LTSBonus[S, T any]() BonusHook[S, T] {
	return func(l, r *core.Graph[S, T], lID, rID int) float64 {
		if l.IsInitial(lID) && r.IsInitial(rID) {
			return 1
		}

		return 0
	}
}

type bfCandidate struct{ lID, rID int }

// BruteForce implements §4.2.3: exhaustive best-match search with
// forcing and most-constrained-right-state branching, maximizing the
// number of combinable transition pairs the merge would collapse plus
// the bonus hook's contribution.
func BruteForce[S, T any](l, r *core.Graph[S, T], cs core.Combiner[S], ct core.Combiner[T], bonus BonusHook[S, T]) (Matching, error) {
	candidates, err := buildCandidates(l, r, cs, ct)
	if err != nil {
		return nil, err
	}

	bf := &bruteForcer[S, T]{l: l, r: r, ct: ct, bonus: bonus}
	_, best := bf.search(Matching{}, candidates)

	if err := ValidateContract(l, r, cs, best); err != nil {
		return nil, err
	}

	return best, nil
}

func buildCandidates[S, T any](l, r *core.Graph[S, T], cs core.Combiner[S], ct core.Combiner[T]) ([]bfCandidate, error) {
	var out []bfCandidate
	for _, lID := range l.States() {
		lp, err := l.Prop(lID)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		for _, rID := range r.States() {
			rp, err := r.Prop(rID)
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !cs.AreCombinable(lp, rp) {
				continue
			}
			if sharesCombinableTransition(l, r, lID, rID, ct) {
				out = append(out, bfCandidate{lID: lID, rID: rID})
			}
		}
	}

	return out, nil
}

func sharesCombinableTransition[S, T any](l, r *core.Graph[S, T], lID, rID int, ct core.Combiner[T]) bool {
	for _, lt := range l.Outgoing(lID) {
		for _, rt := range r.Outgoing(rID) {
			if ct.AreCombinable(lt.Prop, rt.Prop) {
				return true
			}
		}
	}
	for _, lt := range l.Incoming(lID) {
		for _, rt := range r.Incoming(rID) {
			if ct.AreCombinable(lt.Prop, rt.Prop) {
				return true
			}
		}
	}

	return false
}

type bruteForcer[S, T any] struct {
	l, r  *core.Graph[S, T]
	ct    core.Combiner[T]
	bonus BonusHook[S, T]
}

// search implements §4.2.3's recursive procedure.
func (bf *bruteForcer[S, T]) search(fixed Matching, candidates []bfCandidate) (float64, Matching) {
	fixed, candidates = bf.force(fixed, candidates)

	if len(candidates) == 0 {
		return bf.objective(fixed), fixed
	}

	rCount := make(map[int]int, len(candidates))
	rFirstSeen := make(map[int]int, len(candidates))
	for i, c := range candidates {
		rCount[c.rID]++
		if _, ok := rFirstSeen[c.rID]; !ok {
			rFirstSeen[c.rID] = i
		}
	}

	minR, minCount := -1, -1
	for rID, count := range rCount {
		if minCount == -1 || count < minCount || (count == minCount && rFirstSeen[rID] < rFirstSeen[minR]) {
			minR, minCount = rID, count
		}
	}

	var bestScore float64
	var bestFixed Matching
	first := true

	for _, c := range candidates {
		if c.rID != minR {
			continue
		}
		next := cloneMatching(fixed)
		next[c.lID] = c.rID
		score, result := bf.search(next, dropConflicting(candidates, c.lID, c.rID))
		if first || score > bestScore {
			bestScore, bestFixed, first = score, result, false
		}
	}

	// "skip r_min": remove every candidate involving it, keep fixed as-is.
	skipped := make([]bfCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.rID != minR {
			skipped = append(skipped, c)
		}
	}
	score, result := bf.search(cloneMatching(fixed), skipped)
	if first || score > bestScore {
		bestScore, bestFixed = score, result
	}

	return bestScore, bestFixed
}

// force repeatedly drops candidates conflicting with fixed and folds in
// any candidate whose left and right state each appear in exactly one
// remaining candidate, until no more forcing applies (§4.2.3 step 2).
func (bf *bruteForcer[S, T]) force(fixed Matching, candidates []bfCandidate) (Matching, []bfCandidate) {
	fixed = cloneMatching(fixed)
	for {
		candidates = dropConflictingAll(candidates, fixed)

		lCount := make(map[int]int, len(candidates))
		rCount := make(map[int]int, len(candidates))
		for _, c := range candidates {
			lCount[c.lID]++
			rCount[c.rID]++
		}

		var forced *bfCandidate
		for i, c := range candidates {
			if lCount[c.lID] == 1 && rCount[c.rID] == 1 {
				forced = &candidates[i]

				break
			}
		}
		if forced == nil {
			return fixed, candidates
		}
		fixed[forced.lID] = forced.rID
	}
}

func (bf *bruteForcer[S, T]) objective(fixed Matching) float64 {
	var total float64
	for lID, rID := range fixed {
		for _, lt := range bf.l.Outgoing(lID) {
			for _, rt := range bf.r.Outgoing(rID) {
				if !bf.ct.AreCombinable(lt.Prop, rt.Prop) {
					continue
				}
				if matchedR, ok := fixed[lt.Target]; ok && matchedR == rt.Target {
					total++
				}
			}
		}
		total += bf.bonus(bf.l, bf.r, lID, rID)
	}

	return total
}

func cloneMatching(m Matching) Matching {
	out := make(Matching, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func dropConflicting(candidates []bfCandidate, lID, rID int) []bfCandidate {
	out := make([]bfCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.lID == lID || c.rID == rID {
			continue
		}
		out = append(out, c)
	}

	return out
}

func dropConflictingAll(candidates []bfCandidate, fixed Matching) []bfCandidate {
	out := make([]bfCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, usedLeft := fixed[c.lID]; usedLeft {
			continue
		}
		conflict := false
		for _, rID := range fixed {
			if rID == c.rID {
				conflict = true

				break
			}
		}
		if conflict {
			continue
		}
		out = append(out, c)
	}

	return out
}
