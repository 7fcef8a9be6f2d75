package score

import "github.com/katalvlaran/lvdiff/core"

// DefaultAlpha is the attenuation factor's default (§6).
const DefaultAlpha = 0.6

// Direction selects which incidence (outgoing or incoming) a directional
// score computation walks (§4.1).
type Direction int

const (
	// Forward walks outgoing transitions, pairing transition targets.
	Forward Direction = iota
	// Backward walks incoming transitions, pairing transition sources.
	Backward
)

// Adjustment supplies the context-specific Δ_num/Δ_den corrections §4.1
// allows a graph variant to add to the directional score formula (e.g. the
// LTS variant's initial-state bonus). A GLTS with no variant-specific
// behavior uses NoAdjustment.
type Adjustment[S, T any] func(l, r *core.Graph[S, T], lID, rID int, dir Direction) (deltaNum, deltaDen float64)

// NoAdjustment is the zero adjustment (plain GLTS, §4.1).
func NoAdjustment[S, T any]() Adjustment[S, T] {
	return func(*core.Graph[S, T], *core.Graph[S, T], int, int, Direction) (float64, float64) {
		return 0, 0
	}
}

// LTSAdjustment implements §4.1's LTS variant adjustment: the backward
// direction gains 1 in the denominator if either state is initial, and 1
// in the numerator if both are initial.
func LTSAdjustment[S, T any]() Adjustment[S, T] {
	return func(l, r *core.Graph[S, T], lID, rID int, dir Direction) (float64, float64) {
		if dir != Backward {
			return 0, 0
		}
		lInit, rInit := l.IsInitial(lID), r.IsInitial(rID)
		var num, den float64
		if lInit || rInit {
			den = 1
		}
		if lInit && rInit {
			num = 1
		}

		return num, den
	}
}

// Config bundles everything a directional score computation needs beyond
// the two graphs themselves: the state/transition combiners, the
// attenuation factor and the variant-specific adjustment.
type Config[S, T any] struct {
	StateCombiner      core.Combiner[S]
	TransitionCombiner core.Combiner[T]
	Alpha              float64
	Adjustment         Adjustment[S, T]
}

// DefaultConfig returns a Config with DefaultAlpha and no variant
// adjustment (plain GLTS).
func DefaultConfig[S, T any](cs core.Combiner[S], ct core.Combiner[T]) Config[S, T] {
	return Config[S, T]{
		StateCombiner:      cs,
		TransitionCombiner: ct,
		Alpha:              DefaultAlpha,
		Adjustment:         NoAdjustment[S, T](),
	}
}

func (c Config[S, T]) validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return ErrPrecondition
	}
	if c.Adjustment == nil {
		return ErrPrecondition
	}

	return nil
}
