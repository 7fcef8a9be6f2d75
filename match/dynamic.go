package match

import (
	"github.com/katalvlaran/lvdiff/core"
	"github.com/katalvlaran/lvdiff/score"
)

// DynamicSizeThreshold is the matcher's size breakpoint (§4.2.5, §6).
const DynamicSizeThreshold = 45

// Dynamic implements §4.2.5: chooses Walkinshaw above the size threshold,
// Kuhn-Munkres at or below it. The score matrix is supplied by the
// caller (typically score.Dynamic) and normalized here per §4.2.4.
func Dynamic[S, T any](l, r *core.Graph[S, T], raw *score.Matrix, cs core.Combiner[S], wcfg WalkinshawConfig[S, T]) (Matching, error) {
	normalized := Normalize(raw)

	size := l.Size()
	if r.Size() > size {
		size = r.Size()
	}

	if size > DynamicSizeThreshold {
		return Walkinshaw(l, r, normalized, wcfg, cs)
	}

	return KuhnMunkres(l, r, normalized, cs)
}
