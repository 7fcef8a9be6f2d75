package merge

// Projections holds π_L and π_R (§4.3): the map from each input graph's
// state ids to the id they were assigned in the merged graph. A matched
// pair (l,r) shares a single merged id, so Left[l] == Right[r] for it.
type Projections struct {
	Left  map[int]int
	Right map[int]int
}

// ProjectLeft reports the merged id for a left-graph state id.
func (p *Projections) ProjectLeft(lID int) (int, bool) {
	id, ok := p.Left[lID]

	return id, ok
}

// ProjectRight reports the merged id for a right-graph state id.
func (p *Projections) ProjectRight(rID int) (int, bool) {
	id, ok := p.Right[rID]

	return id, ok
}
