package spatialmath

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r3"
)

type sphere struct {
	center r3.Vector
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(center r3.Vector, radius float64, label string) (Geometry, error) {
	if radius < 0 {
		return nil, newBadGeometryDimensionsError(&sphere{})
	}
	return &sphere{center: center, radius: radius, label: label}, nil
}

func (s *sphere) String() string {
	return fmt.Sprintf("Type: Sphere | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f",
		s.center.X, s.center.Y, s.center.Z, s.radius)
}

func (s *sphere) MarshalJSON() ([]byte, error) {
	return json.Marshal(GeometryConfig{
		Type:              SphereType,
		R:                 s.radius,
		TranslationOffset: s.center,
		Label:             s.label,
	})
}

// Label returns the label of the sphere.
func (s *sphere) Label() string {
	return s.label
}

// Center returns the center of the sphere.
func (s *sphere) Center() r3.Vector {
	return s.center
}

// ContainsPoint reports whether pt is within radius+buffer of the sphere center.
func (s *sphere) ContainsPoint(pt r3.Vector, buffer float64) bool {
	return Distance(s.center, pt) <= s.radius+buffer
}
