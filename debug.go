package envelope

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame metrics. Only collected when Scene.debug is true.
type frameStats struct {
	updateTime time.Duration
	fields     []*Field
	queued     int
}

// debugLog prints frame timing and field state to stderr.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[envelope] update: %v | frame callbacks queued: %d | scroll: %.1f/%.1f\n",
		stats.updateTime, stats.queued, s.scroll.Y, s.scroll.MaxY)
	for _, f := range stats.fields {
		_, _ = fmt.Fprintf(os.Stderr, "[envelope] field %s: state=%s running=%t particles=%d ticks=%d\n",
			f.Name(), f.State(), f.Running(), f.Count(), f.Ticks())
	}
}

// debugLogf writes a single diagnostic line to stderr.
func debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[envelope] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("envelope debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}
