package rewrite

import "github.com/katalvlaran/lvdiff/core"

// Automaton is the graph shape the automaton-specific rewriters (§4.4.2-
// §4.4.5) operate on: state properties track accepting/init/state-kind,
// transition properties carry a domain label plus a DiffKind tag.
type Automaton[U any] = *core.Graph[core.DiffAutomatonStateProperty, core.DiffProperty[U]]

// Rewriter is the §4.4 contract: apply once, report whether the graph
// changed. The round-robin driver (Run) re-invokes every registered
// Rewriter until a full pass reports no change from any of them.
type Rewriter[U any] func(g Automaton[U]) (bool, error)
