package spatialmath

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// capsule is a collision geometry that represents a capsule, it has a center, an axis and a radius that fully define it.
//
// ....___________________
// .../                   \
// .x|  |-------O-------|  |x
// ...\___________________/
//
// Length is the distance between the x's, or internal segment length + 2*radius.
type capsule struct {
	center r3.Vector
	axis   r3.Vector // unit vector
	radius float64
	length float64 // total length of the capsule, tip to tip
	label  string

	// Proximal and distal endpoints of the internal line segment, precomputed at creation time.
	segA r3.Vector
	segB r3.Vector
}

// NewCapsule instantiates a new capsule Geometry centered on center and aligned with axis.
func NewCapsule(center, axis r3.Vector, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&capsule{})
	}
	if length < radius*2 {
		return nil, newBadCapsuleLengthError(length, radius)
	}
	if axis.Norm() == 0 {
		return nil, errors.New("capsule axis must be non-zero")
	}
	if length == radius*2 {
		return NewSphere(center, radius, label)
	}
	unit := axis.Normalize()
	half := unit.Mul(length/2 - radius)
	return &capsule{
		center: center,
		axis:   unit,
		radius: radius,
		length: length,
		label:  label,
		segA:   center.Sub(half),
		segB:   center.Add(half),
	}, nil
}

func (c *capsule) String() string {
	return fmt.Sprintf("Type: Capsule | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f | Length: %.1f",
		c.center.X, c.center.Y, c.center.Z, c.radius, c.length)
}

func (c *capsule) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{
		Type:              CapsuleType,
		R:                 c.radius,
		L:                 c.length,
		TranslationOffset: c.center,
		Axis:              c.axis,
		Label:             c.label,
	})
}

// Label returns the label of the capsule.
func (c *capsule) Label() string {
	return c.label
}

// Center returns the midpoint of the capsule.
func (c *capsule) Center() r3.Vector {
	return c.center
}

// ContainsPoint reports whether pt is within radius+buffer of the capsule's internal segment.
func (c *capsule) ContainsPoint(pt r3.Vector, buffer float64) bool {
	return Distance(closestPointSegmentPoint(c.segA, c.segB, pt), pt) <= c.radius+buffer
}

func newBadCapsuleLengthError(length, radius float64) error {
	return errors.Errorf("capsule length %.2f must be at least twice the radius %.2f", length, radius)
}
