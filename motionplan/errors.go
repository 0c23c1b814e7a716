package motionplan

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NewPlannerFailedError is returned by callers that treat an empty plan as fatal.
func NewPlannerFailedError() error {
	return errors.New("motion planner failed to find path")
}

func newInvalidStepSizeError(step float64) error {
	return errors.Errorf("step size must be a positive finite number, got %v", step)
}

func newNonFinitePointError(name string, pt r3.Vector) error {
	return errors.Errorf("%s must have finite coordinates, got %v", name, pt)
}

func newNilEnvironmentError() error {
	return errors.New("planner requires a non-nil environment")
}

func newPathStepError(i int, dist float64) error {
	return errors.Errorf("segment %d has length %v which is not a lattice step", i, dist)
}

func newWaypointOutsideError(i int, pt r3.Vector) error {
	return errors.Errorf("waypoint %d %v is outside the environment", i, pt)
}

func newWaypointCollisionError(i int, pt r3.Vector) error {
	return errors.Errorf("waypoint %d %v is in collision", i, pt)
}
