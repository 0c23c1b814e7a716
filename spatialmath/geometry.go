// Package spatialmath defines the point and obstacle geometry primitives used by the environment
// model and the planner. Points are represented as r3.Vector values.
package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// GeometryType defines what geometry creator representations are known.
type GeometryType string

// The set of allowed representations for geometry.
const (
	UnknownType  = GeometryType("")
	BoxType      = GeometryType("box")
	SphereType   = GeometryType("sphere")
	CapsuleType  = GeometryType("capsule")
	CylinderType = GeometryType("cylinder")
)

// Geometry is an obstacle volume that can answer point containment queries. Implementations are
// immutable after construction and safe to query concurrently.
type Geometry interface {
	// ContainsPoint reports whether pt lies inside the geometry inflated by buffer.
	ContainsPoint(pt r3.Vector, buffer float64) bool
	// Center returns the centroid of the geometry.
	Center() r3.Vector
	Label() string
	String() string
	json.Marshaler
}

// GeometryConfig specifies the format of geometries specified through JSON configuration files.
type GeometryConfig struct {
	Type GeometryType `json:"type"`

	// parameters used for defining a box's rectangular cross-section
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	Z float64 `json:"z,omitempty"`

	// parameter used for defining a sphere's radius, or the radius of a capsule or cylinder
	R float64 `json:"r,omitempty"`

	// parameter used for defining a capsule's tip to tip length, or a cylinder's height
	L float64 `json:"l,omitempty"`

	// define an offset to position the geometry. For capsules this is the axis direction and
	// half-length is taken from L.
	TranslationOffset r3.Vector `json:"translation,omitempty"`
	Axis              r3.Vector `json:"axis,omitempty"`

	Label string `json:"label,omitempty"`
}

// ParseConfig converts a GeometryConfig into the correct Geometry.
func (config *GeometryConfig) ParseConfig() (Geometry, error) {
	switch config.Type {
	case BoxType:
		return NewBox(config.TranslationOffset, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
	case SphereType:
		return NewSphere(config.TranslationOffset, config.R, config.Label)
	case CapsuleType:
		axis := config.Axis
		if axis.Norm() == 0 {
			axis = r3.Vector{Z: 1}
		}
		return NewCapsule(config.TranslationOffset, axis, config.R, config.L, config.Label)
	case CylinderType:
		return NewCylinder(config.TranslationOffset, config.R, config.L, config.Label)
	case UnknownType:
		// no type specified, iterate through supported types and try to infer intent
		if config.R > 0 && config.L == 0 {
			return NewSphere(config.TranslationOffset, config.R, config.Label)
		}
		if config.X > 0 || config.Y > 0 || config.Z > 0 {
			return NewBox(config.TranslationOffset, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
		}
		return nil, errors.Errorf("cannot infer geometry type from config %+v", *config)
	default:
		return nil, newGeometryTypeUnsupportedError(string(config.Type))
	}
}

func newBadGeometryDimensionsError(g Geometry) error {
	return errors.Errorf("invalid dimension(s) for a %T", g)
}

func newGeometryTypeUnsupportedError(geomType string) error {
	return errors.Errorf("geometry type %q is unsupported", geomType)
}
