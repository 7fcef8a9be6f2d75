package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/score"
)

// DefaultTau is the landmark-selection threshold's default (§4.2.2, §6).
const DefaultTau = 0.25

// DefaultRho is the landmark-adoption margin's default (§4.2.2, §6).
const DefaultRho = 1.5

// FallbackHook supplies the landmark set used when phase 1 adopts none
// (§4.2.2). DefaultFallback is the plain-GLTS policy (empty set); the LTS
// variant overrides it with LTSFallback.
type FallbackHook[S, T any] func(l, r *core.Graph[S, T], normalized *score.Matrix) Matching

// DefaultFallback is the non-LTS fallback policy: no landmarks (§9 open
// question 3 — the documented source behavior, not an invented guess).
func DefaultFallback[S, T any]() FallbackHook[S, T] {
	return func(*core.Graph[S, T], *core.Graph[S, T], *score.Matrix) Matching {
		return Matching{}
	}
}

// LTSFallback returns the single compatible initial-state pair with the
// highest score, if any exists (§4.2.2's LTS variant override).
func LTSFallback[S, T any]() FallbackHook[S, T] {
	return func(l, r *core.Graph[S, T], normalized *score.Matrix) Matching {
		lIDs, rIDs := l.States(), r.States()
		bestScore := math.Inf(-1)
		bestL, bestR := -1, -1
		for i, lID := range lIDs {
			if !l.IsInitial(lID) {
				continue
			}
			for j, rID := range rIDs {
				if !r.IsInitial(rID) {
					continue
				}
				v := normalized.At(i, j)
				if v == score.NegInf {
					continue
				}
				if v > bestScore {
					bestScore, bestL, bestR = v, lID, rID
				}
			}
		}
		if bestL < 0 {
			return Matching{}
		}

		return Matching{bestL: bestR}
	}
}

// WalkinshawConfig bundles the landmark matcher's tunables (§4.2.2, §6).
type WalkinshawConfig[S, T any] struct {
	Tau                float64
	Rho                float64
	TransitionCombiner core.Combiner[T]
	Fallback           FallbackHook[S, T]
}

// DefaultWalkinshawConfig returns a WalkinshawConfig with the default τ,
// ρ and the plain-GLTS fallback policy.
func DefaultWalkinshawConfig[S, T any](ct core.Combiner[T]) WalkinshawConfig[S, T] {
	return WalkinshawConfig[S, T]{
		Tau:                DefaultTau,
		Rho:                DefaultRho,
		TransitionCombiner: ct,
		Fallback:           DefaultFallback[S, T](),
	}
}

func (c WalkinshawConfig[S, T]) validate() error {
	if c.Tau < 0 || c.Tau > 1 {
		return fmt.Errorf("match: tau out of [0,1]: %w", ErrPrecondition)
	}
	if c.Rho < 1.0 {
		return fmt.Errorf("match: rho below 1.0: %w", ErrPrecondition)
	}
	if c.Fallback == nil {
		return fmt.Errorf("match: nil fallback hook: %w", ErrPrecondition)
	}

	return nil
}

type scoredPair struct {
	lIdx, rIdx int
	lID, rID   int
	v          float64
}

// Walkinshaw implements §4.2.2's two-phase landmark-and-expand matcher.
func Walkinshaw[S, T any](l, r *core.Graph[S, T], normalized *score.Matrix, cfg WalkinshawConfig[S, T], cs core.Combiner[S]) (Matching, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	lIDs, rIDs := l.States(), r.States()
	n, p := len(lIDs), len(rIDs)
	if normalized.Rows() != n || normalized.Cols() != p {
		return nil, fmt.Errorf("match: score matrix shape %dx%d does not match graphs %dx%d: %w",
			normalized.Rows(), normalized.Cols(), n, p, ErrPrecondition)
	}

	landmarks := selectLandmarks(lIDs, rIDs, normalized, cfg.Tau, cfg.Rho)
	if len(landmarks) == 0 {
		landmarks = cfg.Fallback(l, r, normalized)
	}

	expanded, err := expandLandmarks(l, r, normalized, landmarks, cfg.TransitionCombiner)
	if err != nil {
		return nil, err
	}

	if err := ValidateContract(l, r, cs, expanded); err != nil {
		return nil, err
	}

	return expanded, nil
}

// selectLandmarks is phase 1 (§4.2.2).
func selectLandmarks(lIDs, rIDs []int, normalized *score.Matrix, tau, rho float64) Matching {
	var compatible []scoredPair
	for i, lID := range lIDs {
		for j, rID := range rIDs {
			v := normalized.At(i, j)
			if v == score.NegInf {
				continue
			}
			compatible = append(compatible, scoredPair{lIdx: i, rIdx: j, lID: lID, rID: rID, v: v})
		}
	}
	sort.SliceStable(compatible, func(a, b int) bool { return compatible[a].v > compatible[b].v })

	k := int(math.Ceil(tau * float64(len(lIDs)) * float64(len(rIDs))))
	if k > len(compatible) {
		k = len(compatible)
	}
	top := compatible[:k]

	leftOrder := make([]int, 0)
	seenLeft := make(map[int]bool)
	byLeft := make(map[int][]scoredPair)
	for _, sp := range top {
		if !seenLeft[sp.lID] {
			seenLeft[sp.lID] = true
			leftOrder = append(leftOrder, sp.lID)
		}
		byLeft[sp.lID] = append(byLeft[sp.lID], sp)
	}

	landmarks := Matching{}
	usedRight := make(map[int]bool)
	for _, lID := range leftOrder {
		var remaining []scoredPair
		for _, sp := range byLeft[lID] {
			if !usedRight[sp.rID] {
				remaining = append(remaining, sp)
			}
		}
		switch {
		case len(remaining) == 0:
			continue
		case len(remaining) == 1:
			landmarks[lID] = remaining[0].rID
			usedRight[remaining[0].rID] = true
		default:
			sort.SliceStable(remaining, func(a, b int) bool { return remaining[a].v > remaining[b].v })
			if remaining[0].v > remaining[1].v*rho {
				landmarks[lID] = remaining[0].rID
				usedRight[remaining[0].rID] = true
			}
		}
	}

	return landmarks
}

// expandLandmarks is phase 2 (§4.2.2): repeatedly grow K by the
// highest-scoring transition-adjacent neighbor pair, dropping conflicts,
// recomputing the neighbor set from scratch whenever it is exhausted.
func expandLandmarks[S, T any](l, r *core.Graph[S, T], normalized *score.Matrix, landmarks Matching, ct core.Combiner[T]) (Matching, error) {
	lIDs, rIDs := l.States(), r.States()
	lIndex, rIndex := make(map[int]int, len(lIDs)), make(map[int]int, len(rIDs))
	for i, id := range lIDs {
		lIndex[id] = i
	}
	for j, id := range rIDs {
		rIndex[id] = j
	}

	k := make(Matching, len(landmarks))
	usedLeft, usedRight := make(map[int]bool), make(map[int]bool)
	for lID, rID := range landmarks {
		k[lID] = rID
		usedLeft[lID] = true
		usedRight[rID] = true
	}

	for {
		candidates := neighborCandidates(l, r, k, usedLeft, usedRight, lIndex, rIndex, normalized, ct)
		if len(candidates) == 0 {
			break
		}
		for len(candidates) > 0 {
			bestIdx := 0
			for i := 1; i < len(candidates); i++ {
				if candidates[i].v > candidates[bestIdx].v {
					bestIdx = i
				}
			}
			best := candidates[bestIdx]
			k[best.lID] = best.rID
			usedLeft[best.lID] = true
			usedRight[best.rID] = true

			next := candidates[:0]
			for _, c := range candidates {
				if c.lID == best.lID || c.rID == best.rID {
					continue
				}
				next = append(next, c)
			}
			candidates = next
		}
	}

	return k, nil
}

// neighborCandidates gathers every compatible, not-yet-used pair adjacent
// (via a combinable transition, either direction) to some pair already in k.
func neighborCandidates[S, T any](l, r *core.Graph[S, T], k Matching, usedLeft, usedRight map[int]bool, lIndex, rIndex map[int]int, normalized *score.Matrix, ct core.Combiner[T]) []scoredPair {
	seen := make(map[[2]int]bool)
	var out []scoredPair

	consider := func(lID, rID int) {
		if usedLeft[lID] || usedRight[rID] {
			return
		}
		key := [2]int{lID, rID}
		if seen[key] {
			return
		}
		li, lok := lIndex[lID]
		ri, rok := rIndex[rID]
		if !lok || !rok {
			return
		}
		v := normalized.At(li, ri)
		if v == score.NegInf {
			return
		}
		seen[key] = true
		out = append(out, scoredPair{lIdx: li, rIdx: ri, lID: lID, rID: rID, v: v})
	}

	lAnchors := make([]int, 0, len(k))
	for kl := range k {
		lAnchors = append(lAnchors, kl)
	}
	sort.Ints(lAnchors)

	for _, kl := range lAnchors {
		kr := k[kl]
		for _, lt := range l.Outgoing(kl) {
			for _, rt := range r.Outgoing(kr) {
				if ct.AreCombinable(lt.Prop, rt.Prop) {
					consider(lt.Target, rt.Target)
				}
			}
		}
		for _, lt := range l.Incoming(kl) {
			for _, rt := range r.Incoming(kr) {
				if ct.AreCombinable(lt.Prop, rt.Prop) {
					consider(lt.Source, rt.Source)
				}
			}
		}
	}

	return out
}
