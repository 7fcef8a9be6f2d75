package rewrite

// Run implements §4.4's post-processing driver: runs every registered
// rewriter once per round, repeating rounds as long as any rewriter in the
// last round reported a change. Returns whether the graph changed overall.
func Run[U any](g Automaton[U], rewriters []Rewriter[U]) (bool, error) {
	changedOverall := false
	for {
		roundChanged := false
		for _, rw := range rewriters {
			changed, err := rw(g)
			if err != nil {
				return changedOverall, err
			}
			if changed {
				roundChanged = true
				changedOverall = true
			}
		}
		if !roundChanged {
			return changedOverall, nil
		}
	}
}
