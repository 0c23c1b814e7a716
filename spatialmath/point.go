package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b r3.Vector) float64 {
	return a.Sub(b).Norm()
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// IsFinite reports whether every coordinate of v is neither NaN nor infinite.
func IsFinite(v r3.Vector) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// closestPointSegmentPoint takes a line segment and a point, and returns the point on the segment closest to the point.
func closestPointSegmentPoint(segA, segB, pt r3.Vector) r3.Vector {
	ab := segB.Sub(segA)
	denom := ab.Norm2()
	if denom == 0 {
		return segA
	}
	t := pt.Sub(segA).Dot(ab) / denom
	t = math.Max(0, math.Min(1, t))
	return segA.Add(ab.Mul(t))
}
