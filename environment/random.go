package environment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/gridplan/spatialmath"
	"go.viam.com/gridplan/utils"
)

// default values for random obstacle fields.
const (
	defaultMinRadius = 0.5
	defaultMaxRadius = 1.5

	// Give up on placing a cylinder after this many rejected draws.
	maxPlacementAttempts = 100
)

// RandomFieldConfig describes a seeded field of vertical cylinders spanning the full workspace height.
type RandomFieldConfig struct {
	Seed      int64   `json:"seed"`
	Count     int     `json:"count"`
	MinRadius float64 `json:"min_radius,omitempty"`
	MaxRadius float64 `json:"max_radius,omitempty"`

	// Cylinders are never placed within ClearanceRadius (horizontally) of a keep-clear point.
	ClearanceRadius float64 `json:"clearance_radius,omitempty"`
}

// Validate ensures the random field parameters are usable.
func (cfg *RandomFieldConfig) Validate(path string) error {
	var errs error
	if cfg.Count < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.New("count can't be negative")))
	}
	if cfg.MinRadius < 0 || cfg.MaxRadius < 0 || cfg.ClearanceRadius < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.New("radii can't be negative")))
	}
	if cfg.MaxRadius > 0 && cfg.MinRadius > cfg.MaxRadius {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("min_radius %v exceeds max_radius %v", cfg.MinRadius, cfg.MaxRadius)))
	}
	return errs
}

// NewRandomCylinderField places cfg.Count vertical cylinders inside [lo, hi] using a generator
// seeded with cfg.Seed, so the same config always yields the same field.
func NewRandomCylinderField(cfg RandomFieldConfig, lo, hi r3.Vector, keepClear []r3.Vector) ([]spatialmath.Geometry, error) {
	if err := cfg.Validate("random_field"); err != nil {
		return nil, err
	}
	minR, maxR := cfg.MinRadius, cfg.MaxRadius
	if minR == 0 {
		minR = defaultMinRadius
	}
	if maxR == 0 {
		maxR = math.Max(defaultMaxRadius, minR)
	}
	height := hi.Z - lo.Z
	if height <= 0 {
		return nil, errors.New("random cylinders need a workspace with positive height")
	}

	//nolint:gosec
	rng := rand.New(rand.NewSource(cfg.Seed))
	field := make([]spatialmath.Geometry, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		placed := false
		for attempt := 0; attempt < maxPlacementAttempts && !placed; attempt++ {
			radius := minR + rng.Float64()*(maxR-minR)
			base := r3.Vector{
				X: lo.X + rng.Float64()*(hi.X-lo.X),
				Y: lo.Y + rng.Float64()*(hi.Y-lo.Y),
				Z: lo.Z,
			}
			if blocksAny(base, radius+cfg.ClearanceRadius, keepClear) {
				continue
			}
			cyl, err := spatialmath.NewCylinder(base, radius, height, fmt.Sprintf("cylinder-%d", i))
			if err != nil {
				return nil, err
			}
			field = append(field, cyl)
			placed = true
		}
		if !placed {
			return nil, errors.Errorf("could not place cylinder %d clear of %d keep-clear points after %d attempts",
				i, len(keepClear), maxPlacementAttempts)
		}
	}
	return field, nil
}

func blocksAny(base r3.Vector, reach float64, pts []r3.Vector) bool {
	for _, pt := range pts {
		if math.Hypot(pt.X-base.X, pt.Y-base.Y) <= reach {
			return true
		}
	}
	return false
}
