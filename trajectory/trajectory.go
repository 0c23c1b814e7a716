// Package trajectory fits a smooth time-parameterized curve through planned waypoints.
//
// Every waypoint is assigned a time knot from its distance to the previous waypoint and an
// assumed average speed. Each axis is then interpolated independently by a clamped cubic spline,
// so the curve passes exactly through every waypoint at its knot and starts and ends at rest.
package trajectory

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/spatialmath"
)

const (
	// DefaultAverageSpeed is the speed used to assign time knots when none is given.
	DefaultAverageSpeed = 2.0

	// DefaultSampleStep is the sampling period used when none is given.
	DefaultSampleStep = 0.1

	// Consecutive waypoints closer than this are treated as duplicates.
	dedupThreshold = 1e-3

	// Segment lengths are floored at this before being turned into durations.
	minSegmentLength = 1e-6
)

// Sample is the position of the curve at time T.
type Sample struct {
	T        float64
	Position r3.Vector
}

// Trajectory is an immutable set of per-axis splines through a deduplicated waypoint sequence.
// A Trajectory built from fewer than two distinct waypoints is degenerate: it has no curve and
// every sampling call returns empty results.
type Trajectory struct {
	waypoints    []r3.Vector
	knots        []float64
	averageSpeed float64

	x, y, z *interp.ClampedCubic
}

// NewTrajectory deduplicates waypoints, assigns time knots at averageSpeed and fits the curve.
// The only error is a non-positive or non-finite averageSpeed. Degenerate input is reported by
// Degenerate, not by an error.
func NewTrajectory(waypoints []r3.Vector, averageSpeed float64, logger logging.Logger) (*Trajectory, error) {
	if !(averageSpeed > 0) || math.IsInf(averageSpeed, 0) {
		return nil, errors.Errorf("average speed must be a positive finite number, got %v", averageSpeed)
	}
	for i, wp := range waypoints {
		if !spatialmath.IsFinite(wp) {
			return nil, errors.Errorf("waypoint %d must have finite coordinates, got %v", i, wp)
		}
	}

	traj := &Trajectory{
		waypoints:    dedupWaypoints(waypoints),
		averageSpeed: averageSpeed,
	}
	if len(traj.waypoints) < 2 {
		logger.Warnw("too few distinct waypoints to fit a trajectory",
			"given", len(waypoints), "distinct", len(traj.waypoints))
		traj.knots = []float64{0}
		return traj, nil
	}

	traj.knots = timeKnots(traj.waypoints, averageSpeed)
	for i := 1; i < len(traj.knots); i++ {
		if !(traj.knots[i] > traj.knots[i-1]) {
			return nil, errors.Errorf("time knots are not strictly increasing at index %d (%v, %v)",
				i, traj.knots[i-1], traj.knots[i])
		}
	}

	xs, ys, zs := splitAxes(traj.waypoints)
	traj.x, traj.y, traj.z = &interp.ClampedCubic{}, &interp.ClampedCubic{}, &interp.ClampedCubic{}
	for _, fit := range []struct {
		name   string
		spline *interp.ClampedCubic
		vals   []float64
	}{{"x", traj.x, xs}, {"y", traj.y, ys}, {"z", traj.z, zs}} {
		if err := fit.spline.Fit(traj.knots, fit.vals); err != nil {
			return nil, errors.Wrapf(err, "cannot fit %s axis spline", fit.name)
		}
	}

	logger.Debugw("fitted trajectory",
		"waypoints", len(traj.waypoints),
		"dropped", len(waypoints)-len(traj.waypoints),
		"duration", traj.Duration())
	return traj, nil
}

// dedupWaypoints drops every waypoint closer than dedupThreshold to the last kept one. The first
// waypoint is always kept.
func dedupWaypoints(waypoints []r3.Vector) []r3.Vector {
	kept := make([]r3.Vector, 0, len(waypoints))
	for i, wp := range waypoints {
		if i == 0 || spatialmath.Distance(kept[len(kept)-1], wp) >= dedupThreshold {
			kept = append(kept, wp)
		}
	}
	return kept
}

// timeKnots returns the cumulative travel time to each waypoint, starting at zero.
func timeKnots(waypoints []r3.Vector, averageSpeed float64) []float64 {
	durations := make([]float64, len(waypoints))
	for i := 1; i < len(waypoints); i++ {
		durations[i] = math.Max(spatialmath.Distance(waypoints[i-1], waypoints[i]), minSegmentLength) / averageSpeed
	}
	return floats.CumSum(make([]float64, len(durations)), durations)
}

func splitAxes(pts []r3.Vector) (xs, ys, zs []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	zs = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

// Degenerate reports whether too few distinct waypoints were given to fit a curve.
func (traj *Trajectory) Degenerate() bool {
	return traj.x == nil
}

// Waypoints returns the deduplicated waypoints the curve passes through.
func (traj *Trajectory) Waypoints() []r3.Vector {
	out := make([]r3.Vector, len(traj.waypoints))
	copy(out, traj.waypoints)
	return out
}

// TimeKnots returns the time assigned to each deduplicated waypoint.
func (traj *Trajectory) TimeKnots() []float64 {
	out := make([]float64, len(traj.knots))
	copy(out, traj.knots)
	return out
}

// AverageSpeed returns the speed used to assign the time knots.
func (traj *Trajectory) AverageSpeed() float64 {
	return traj.averageSpeed
}

// Duration returns the final knot time, zero for a degenerate trajectory.
func (traj *Trajectory) Duration() float64 {
	return traj.knots[len(traj.knots)-1]
}

// Position evaluates the curve at t. Times outside [0, Duration] are clamped to the nearest end.
// A degenerate trajectory returns its only waypoint, or the zero vector when it has none.
func (traj *Trajectory) Position(t float64) r3.Vector {
	if traj.Degenerate() {
		if len(traj.waypoints) == 1 {
			return traj.waypoints[0]
		}
		return r3.Vector{}
	}
	return r3.Vector{X: traj.x.Predict(t), Y: traj.y.Predict(t), Z: traj.z.Predict(t)}
}

// Velocity evaluates the first derivative of the curve at t. It is zero at both ends.
func (traj *Trajectory) Velocity(t float64) r3.Vector {
	if traj.Degenerate() {
		return r3.Vector{}
	}
	return r3.Vector{X: traj.x.PredictDerivative(t), Y: traj.y.PredictDerivative(t), Z: traj.z.PredictDerivative(t)}
}

// KnotDeviation returns the largest distance between a waypoint and the curve at its knot.
func (traj *Trajectory) KnotDeviation() float64 {
	if traj.Degenerate() {
		return 0
	}
	worst := 0.
	for i, t := range traj.knots {
		worst = math.Max(worst, spatialmath.Distance(traj.Position(t), traj.waypoints[i]))
	}
	return worst
}
