package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// cylinder is a vertical (Z-aligned) cylinder standing on base and rising height units.
type cylinder struct {
	base   r3.Vector
	radius float64
	height float64
	label  string
}

// NewCylinder instantiates a new vertical cylinder Geometry whose bottom face is centered on base.
func NewCylinder(base r3.Vector, radius, height float64, label string) (Geometry, error) {
	if radius <= 0 || height <= 0 {
		return nil, newBadGeometryDimensionsError(&cylinder{})
	}
	return &cylinder{base: base, radius: radius, height: height, label: label}, nil
}

func (c *cylinder) String() string {
	return fmt.Sprintf("Type: Cylinder | Base: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f | Height: %.1f",
		c.base.X, c.base.Y, c.base.Z, c.radius, c.height)
}

func (c *cylinder) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{
		Type:              CylinderType,
		R:                 c.radius,
		L:                 c.height,
		TranslationOffset: c.base,
		Label:             c.label,
	})
}

// Label returns the label of the cylinder.
func (c *cylinder) Label() string {
	return c.label
}

// Center returns the centroid of the cylinder.
func (c *cylinder) Center() r3.Vector {
	return c.base.Add(r3.Vector{Z: c.height / 2})
}

// ContainsPoint reports whether pt lies inside the cylinder grown by buffer radially and at both caps.
func (c *cylinder) ContainsPoint(pt r3.Vector, buffer float64) bool {
	if pt.Z < c.base.Z-buffer || pt.Z > c.base.Z+c.height+buffer {
		return false
	}
	return math.Hypot(pt.X-c.base.X, pt.Y-c.base.Y) <= c.radius+buffer
}
