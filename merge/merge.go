package merge

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/match"
)

type matchedPair struct{ lID, rID int }

// Merge implements §4.3: given a matching satisfying the matcher contract,
// builds a fresh graph D by combining matched state/transition pairs and
// projecting everything unmatched unchanged. The merged graph's initial and
// accepting markers are the logical OR of the corresponding input markers —
// a matched pair where either side is initial (or accepting) comes out
// initial (accepting) in D, matching the shared-initial-state behavior
// scenario S2 requires of a merge over two initial states.
func Merge[S, T any](l, r *core.Graph[S, T], m match.Matching, cs core.Combiner[S], ct core.Combiner[T]) (*core.Graph[S, T], *Projections, error) {
	if err := match.ValidateContract(l, r, cs, m); err != nil {
		return nil, nil, err
	}

	pairs := make([]matchedPair, 0, len(m))
	for lID, rID := range m {
		pairs = append(pairs, matchedPair{lID: lID, rID: rID})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		ai, bi := l.IsInitial(a.lID), l.IsInitial(b.lID)
		if ai != bi {
			return ai // a.isInitial(l) desc
		}
		ar, br := r.IsInitial(a.rID), r.IsInitial(b.rID)
		if ar != br {
			return ar // a.isInitial(r) desc
		}
		if a.lID != b.lID {
			return a.lID < b.lID // l.id asc
		}

		return a.rID < b.rID // r.id asc
	})

	d := core.NewGraph[S, T]()
	proj := &Projections{Left: make(map[int]int, l.Size()), Right: make(map[int]int, r.Size())}

	for _, p := range pairs {
		lp, err := l.Prop(p.lID)
		if err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		rp, err := r.Prop(p.rID)
		if err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		id := d.AddState(cs.Combine(lp, rp))
		proj.Left[p.lID] = id
		proj.Right[p.rID] = id
		if l.IsInitial(p.lID) || r.IsInitial(p.rID) {
			_ = d.MarkInitial(id, true)
		}
		if l.IsAccepting(p.lID) || r.IsAccepting(p.rID) {
			_ = d.MarkAccepting(id, true)
		}
	}

	for _, lID := range l.States() {
		if _, ok := m[lID]; ok {
			continue
		}
		prop, err := l.Prop(lID)
		if err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		id := d.AddState(prop)
		proj.Left[lID] = id
		if l.IsInitial(lID) {
			_ = d.MarkInitial(id, true)
		}
		if l.IsAccepting(lID) {
			_ = d.MarkAccepting(id, true)
		}
	}

	matchedRight := make(map[int]bool, len(m))
	for _, rID := range m {
		matchedRight[rID] = true
	}
	for _, rID := range r.States() {
		if matchedRight[rID] {
			continue
		}
		prop, err := r.Prop(rID)
		if err != nil {
			return nil, nil, fmt.Errorf("merge: %w", err)
		}
		id := d.AddState(prop)
		proj.Right[rID] = id
		if r.IsInitial(rID) {
			_ = d.MarkInitial(id, true)
		}
		if r.IsAccepting(rID) {
			_ = d.MarkAccepting(id, true)
		}
	}

	if err := emitMatchedTransitions(d, l, r, pairs, m, proj, ct); err != nil {
		return nil, nil, err
	}
	emitUnmatchedLeftTransitions(d, l, m, proj)
	emitUnmatchedRightTransitions(d, r, matchedRight, proj)

	return d, proj, nil
}

// emitMatchedTransitions implements §4.3 step 2's per-pair transition walk:
// each of l's outgoing transitions tries to consume the first still-
// available r-transition that is C_T-combinable and targets the matched
// counterpart of l's target; unconsumed transitions on either side are
// projected unchanged, left first then leftover right.
func emitMatchedTransitions[S, T any](d, l, r *core.Graph[S, T], pairs []matchedPair, m match.Matching, proj *Projections, ct core.Combiner[T]) error {
	for _, p := range pairs {
		lOut := l.Outgoing(p.lID)
		rOut := r.Outgoing(p.rID)
		consumed := make([]bool, len(rOut))

		for _, lt := range lOut {
			expectedRTarget, lTargetMatched := m[lt.Target]
			found := -1
			if lTargetMatched {
				for j, rt := range rOut {
					if consumed[j] {
						continue
					}
					if rt.Target != expectedRTarget {
						continue
					}
					if ct.AreCombinable(lt.Prop, rt.Prop) {
						found = j

						break
					}
				}
			}

			lTargetID, ok := proj.Left[lt.Target]
			if !ok {
				return fmt.Errorf("merge: left transition target %d has no projection: %w", lt.Target, ErrPrecondition)
			}

			if found >= 0 {
				consumed[found] = true
				combined := ct.Combine(lt.Prop, rOut[found].Prop)
				if _, err := d.AddTransition(proj.Left[p.lID], lTargetID, combined); err != nil {
					return fmt.Errorf("merge: %w", err)
				}

				continue
			}

			if _, err := d.AddTransition(proj.Left[p.lID], lTargetID, lt.Prop); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
		}

		for j, rt := range rOut {
			if consumed[j] {
				continue
			}
			rTargetID, ok := proj.Right[rt.Target]
			if !ok {
				return fmt.Errorf("merge: right transition target %d has no projection: %w", rt.Target, ErrPrecondition)
			}
			if _, err := d.AddTransition(proj.Right[p.rID], rTargetID, rt.Prop); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
		}
	}

	return nil
}

func emitUnmatchedLeftTransitions[S, T any](d, l *core.Graph[S, T], m match.Matching, proj *Projections) {
	for _, lID := range l.States() {
		if _, ok := m[lID]; ok {
			continue
		}
		for _, lt := range l.Outgoing(lID) {
			_, _ = d.AddTransition(proj.Left[lID], proj.Left[lt.Target], lt.Prop)
		}
	}
}

func emitUnmatchedRightTransitions[S, T any](d, r *core.Graph[S, T], matchedRight map[int]bool, proj *Projections) {
	for _, rID := range r.States() {
		if matchedRight[rID] {
			continue
		}
		for _, rt := range r.Outgoing(rID) {
			_, _ = d.AddTransition(proj.Right[rID], proj.Right[rt.Target], rt.Prop)
		}
	}
}
