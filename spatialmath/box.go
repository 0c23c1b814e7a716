package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// box is an axis-aligned rectangular prism defined by its center and half size.
type box struct {
	centerPt r3.Vector
	halfSize [3]float64
	label    string
}

// NewBox instantiates a new axis-aligned box Geometry centered on center.
func NewBox(center, dims r3.Vector, label string) (Geometry, error) {
	// Negative dimensions not allowed. Zero dimensions are allowed for bounding boxes, etc.
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&box{})
	}
	halfSize := dims.Mul(0.5)
	return &box{
		centerPt: center,
		halfSize: [3]float64{halfSize.X, halfSize.Y, halfSize.Z},
		label:    label,
	}, nil
}

// NewBoxFromCorners instantiates a box spanning the two opposite corners lo and hi.
func NewBoxFromCorners(lo, hi r3.Vector, label string) (Geometry, error) {
	return NewBox(lo.Add(hi).Mul(0.5), hi.Sub(lo), label)
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		b.centerPt.X, b.centerPt.Y, b.centerPt.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

func (b *box) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{
		Type:              BoxType,
		X:                 2 * b.halfSize[0],
		Y:                 2 * b.halfSize[1],
		Z:                 2 * b.halfSize[2],
		TranslationOffset: b.centerPt,
		Label:             b.label,
	})
}

// Label returns the label of this box.
func (b *box) Label() string {
	return b.label
}

// Center returns the center point of the box.
func (b *box) Center() r3.Vector {
	return b.centerPt
}

// Min returns the lowest corner of the box.
func (b *box) Min() r3.Vector {
	return b.centerPt.Sub(r3.Vector{X: b.halfSize[0], Y: b.halfSize[1], Z: b.halfSize[2]})
}

// Max returns the highest corner of the box.
func (b *box) Max() r3.Vector {
	return b.centerPt.Add(r3.Vector{X: b.halfSize[0], Y: b.halfSize[1], Z: b.halfSize[2]})
}

// ContainsPoint reports whether pt is inside the box grown by buffer on every face. Points on the
// surface are inside.
func (b *box) ContainsPoint(pt r3.Vector, buffer float64) bool {
	return b.pointPenetrationDepth(pt) >= -buffer
}

// pointPenetrationDepth returns how far pt is inside the box along its nearest face. Negative
// values mean the point is outside by at least that much along some axis.
func (b *box) pointPenetrationDepth(pt r3.Vector) float64 {
	direction := pt.Sub(b.centerPt)
	depth := math.Inf(1)
	for i, d := range [3]float64{direction.X, direction.Y, direction.Z} {
		depth = math.Min(depth, b.halfSize[i]-math.Abs(d))
	}
	return depth
}
