// Package motionplan finds collision-free paths for a point agent by best-first search over a
// uniform 3D lattice.
package motionplan

import (
	"github.com/golang/geo/r3"

	"go.viam.com/gridplan/logging"
)

// Environment is the oracle the planner queries for every candidate lattice position. Both
// predicates must be pure functions of the point for planning to be deterministic.
type Environment interface {
	IsOutside(pt r3.Vector) bool
	IsCollide(pt r3.Vector) bool
}

// PlanPath searches for waypoints from start to goal on a lattice with the given step. An empty
// result with a nil error means no path exists. An error is only returned for invalid input.
func PlanPath(env Environment, start, goal r3.Vector, step float64) ([]r3.Vector, error) {
	opt := NewBasicPlannerOptions()
	opt.StepSize = step
	planner, err := NewGridPlanner(env, opt, logging.NewBlankLogger("motionplan"))
	if err != nil {
		return nil, err
	}
	path, _, err := planner.Plan(start, goal)
	return path, err
}
