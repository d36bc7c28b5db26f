package quill

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
}

// start returns a lap function reporting the time since the previous lap.
// When disabled, laps are free and always zero.
func (debugStats) start(enabled bool) func() time.Duration {
	if !enabled {
		return func() time.Duration { return 0 }
	}
	t0 := time.Now()
	return func() time.Duration {
		now := time.Now()
		d := now.Sub(t0)
		t0 = now
		return d
	}
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	debugf("traverse: %v | sort: %v | submit: %v | total: %v | commands: %d",
		stats.traverseTime, stats.sortTime, stats.submitTime, total, stats.commandCount)
}

// debugf writes a "[quill]" line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[quill] "+format+"\n", args...)
}

// warnf writes a "[quill] warning:" line to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[quill] warning: "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("quill debug: %s on disposed node %q", op, n.Name))
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
		warnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		warnf("node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
