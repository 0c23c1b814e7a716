package motionplan

import (
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
)

// PlanMeta is meta data about plan generation.
type PlanMeta struct {
	Duration time.Duration

	// Nodes taken from the open set and expanded into neighbours.
	NodesExpanded int
	// Nodes inserted into the open set, including the start node.
	NodesPushed int
	// Extracted nodes dropped because their lattice key was already closed.
	ClosedSkips int

	OutsideRejections   int
	CollisionRejections int

	// Cost (g) of the terminal node, zero when no path was found.
	PathCost float64
	Found    bool
}

// DeferTiming records the time elapsed on clk since start. Expected usage at the top of a function is:
//
//	defer planMeta.DeferTiming(clk, clk.Now())
func (pm *PlanMeta) DeferTiming(clk clock.Clock, start time.Time) {
	pm.Duration = clk.Since(start)
}

// OutputTiming pretty-prints the search statistics.
func (pm *PlanMeta) OutputTiming(outputWriter io.Writer) {
	//nolint:errcheck
	fmt.Fprintf(outputWriter, `Plan:				%v
  found:			%v
  path cost:		%.4f
  expanded:			%d
  pushed:			%d
  closed skips:		%d
  outside:			%d
  collisions:		%d
`,
		pm.Duration, pm.Found, pm.PathCost, pm.NodesExpanded, pm.NodesPushed,
		pm.ClosedSkips, pm.OutsideRejections, pm.CollisionRejections)
}
