// Package environment implements the obstacle field and workspace boundary that the grid planner
// queries while expanding lattice nodes.
package environment

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/gridplan/spatialmath"
)

// Environment is an immutable workspace made of an axis-aligned bounding volume and a set of
// obstacle geometries. It answers the two predicates the planner needs: whether a point is
// outside the workspace and whether it collides with an obstacle.
type Environment struct {
	boundsMin r3.Vector
	boundsMax r3.Vector
	obstacles []spatialmath.Geometry
	buffer    float64
}

// NewEnvironment returns an Environment spanning [lo, hi] on every axis containing obstacles.
// Points closer than buffer to an obstacle surface count as colliding.
func NewEnvironment(lo, hi r3.Vector, obstacles []spatialmath.Geometry, buffer float64) (*Environment, error) {
	if !spatialmath.IsFinite(lo) || !spatialmath.IsFinite(hi) {
		return nil, errors.New("environment bounds must be finite")
	}
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return nil, errors.Errorf("environment bounds min %v exceeds max %v", lo, hi)
	}
	if buffer < 0 {
		return nil, errors.Errorf("collision buffer can't be negative, got %v", buffer)
	}
	obs := make([]spatialmath.Geometry, len(obstacles))
	copy(obs, obstacles)
	return &Environment{
		boundsMin: lo,
		boundsMax: hi,
		obstacles: obs,
		buffer:    buffer,
	}, nil
}

// IsOutside reports whether pt lies outside the closed workspace bounds.
func (e *Environment) IsOutside(pt r3.Vector) bool {
	return pt.X < e.boundsMin.X || pt.X > e.boundsMax.X ||
		pt.Y < e.boundsMin.Y || pt.Y > e.boundsMax.Y ||
		pt.Z < e.boundsMin.Z || pt.Z > e.boundsMax.Z
}

// IsCollide reports whether pt lies inside any obstacle grown by the collision buffer.
func (e *Environment) IsCollide(pt r3.Vector) bool {
	for _, obstacle := range e.obstacles {
		if obstacle.ContainsPoint(pt, e.buffer) {
			return true
		}
	}
	return false
}

// Bounds returns the lowest and highest corners of the workspace.
func (e *Environment) Bounds() (r3.Vector, r3.Vector) {
	return e.boundsMin, e.boundsMax
}

// Obstacles returns a copy of the obstacle list.
func (e *Environment) Obstacles() []spatialmath.Geometry {
	obs := make([]spatialmath.Geometry, len(e.obstacles))
	copy(obs, e.obstacles)
	return obs
}

// CollisionBuffer returns the inflation applied to every obstacle.
func (e *Environment) CollisionBuffer() float64 {
	return e.buffer
}

// String returns a summary line followed by a table of the obstacles with columns of index,
// label and geometry.
func (e *Environment) String() string {
	summary := fmt.Sprintf("bounds [%.2f %.2f %.2f] -> [%.2f %.2f %.2f], buffer %.3f, %d obstacles",
		e.boundsMin.X, e.boundsMin.Y, e.boundsMin.Z,
		e.boundsMax.X, e.boundsMax.Y, e.boundsMax.Z,
		e.buffer, len(e.obstacles))
	if len(e.obstacles) == 0 {
		return summary
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Label", "Geometry"})
	for i, o := range e.obstacles {
		t.AppendRow(table.Row{fmt.Sprintf("%d", i), o.Label(), o.String()})
	}
	return summary + "\n" + t.Render()
}
