package motionplan

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/gridplan/spatialmath"
)

// Segment lengths within this of a lattice move magnitude are accepted by CheckPath.
const stepTolerance = 1e-9

// latticeOffsets returns the 26 moves obtained by choosing each axis independently from
// {-step, 0, +step}, excluding the zero move.
func latticeOffsets(step float64) []r3.Vector {
	offsets := make([]r3.Vector, 0, 26)
	for _, dx := range []float64{-1, 0, 1} {
		for _, dy := range []float64{-1, 0, 1} {
			for _, dz := range []float64{-1, 0, 1} {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets = append(offsets, r3.Vector{X: dx * step, Y: dy * step, Z: dz * step})
			}
		}
	}
	return offsets
}

// PathLength returns the summed Euclidean length of consecutive segments.
func PathLength(path []r3.Vector) float64 {
	total := 0.
	for i := 1; i < len(path); i++ {
		total += spatialmath.Distance(path[i-1], path[i])
	}
	return total
}

// CheckPath verifies that a planned path is consistent with env and step: every waypoint but the
// last must be inside the environment and free of collisions, and every segment but the last must
// be one lattice move long. The last waypoint and segment come from goal-snap and are exempt.
func CheckPath(env Environment, path []r3.Vector, step float64) error {
	if env == nil {
		return newNilEnvironmentError()
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return newInvalidStepSizeError(step)
	}
	magnitudes := []float64{step, step * math.Sqrt2, step * math.Sqrt(3)}
	for i := 0; i < len(path)-1; i++ {
		if env.IsOutside(path[i]) {
			return newWaypointOutsideError(i, path[i])
		}
		if env.IsCollide(path[i]) {
			return newWaypointCollisionError(i, path[i])
		}
		if i == len(path)-2 {
			break
		}
		dist := spatialmath.Distance(path[i], path[i+1])
		matched := false
		for _, m := range magnitudes {
			if math.Abs(dist-m) <= stepTolerance*math.Max(1, m) {
				matched = true
				break
			}
		}
		if !matched {
			return newPathStepError(i, dist)
		}
	}
	return nil
}
