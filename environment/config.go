package environment

import (
	"encoding/json"
	"fmt"

	"github.com/a8m/envsubst"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/spatialmath"
	"go.viam.com/gridplan/utils"
)

// BoundsConfig describes the workspace as two opposite corners.
type BoundsConfig struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// Config is the JSON representation of an Environment.
type Config struct {
	Bounds          *BoundsConfig                `json:"bounds"`
	Obstacles       []spatialmath.GeometryConfig `json:"obstacles,omitempty"`
	CollisionBuffer float64                      `json:"collision_buffer,omitempty"`

	// RandomField, when set, adds seeded random cylinders on top of Obstacles.
	RandomField *RandomFieldConfig `json:"random_field,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (cfg *Config) Validate(path string) error {
	var errs error
	if cfg.Bounds == nil {
		return utils.NewConfigValidationFieldRequiredError(path, "bounds")
	}
	lo, hi := cfg.Bounds.Min, cfg.Bounds.Max
	if !spatialmath.IsFinite(lo) || !spatialmath.IsFinite(hi) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.New("bounds must be finite")))
	}
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("bounds min %v exceeds max %v", lo, hi)))
	}
	if cfg.CollisionBuffer < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.New("collision_buffer can't be negative")))
	}
	for i, obsCfg := range cfg.Obstacles {
		obsPath := fmt.Sprintf("%s.obstacles.%d", path, i)
		if obsCfg.Label != "" && !utils.ValidNameRegex.MatchString(obsCfg.Label) {
			errs = multierr.Append(errs, utils.NewConfigValidationError(obsPath, utils.ErrInvalidName(obsCfg.Label)))
		}
		if _, err := obsCfg.ParseConfig(); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(obsPath, err))
		}
	}
	if cfg.RandomField != nil {
		if err := cfg.RandomField.Validate(path + ".random_field"); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// ReadConfig reads and validates an environment configuration from a JSON file. ${VAR} references
// are expanded from the process environment before decoding.
func ReadConfig(filePath string) (*Config, error) {
	content, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read environment config %q", filePath)
	}
	cfg := &Config{}
	if err := json.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse environment config %q", filePath)
	}
	if err := cfg.Validate("environment"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromConfig builds an Environment from a validated config. Points in keepClear (typically the
// start and goal) are never covered by randomly generated obstacles.
func NewFromConfig(cfg *Config, keepClear []r3.Vector, logger logging.Logger) (*Environment, error) {
	if err := cfg.Validate("environment"); err != nil {
		return nil, err
	}
	obstacles := make([]spatialmath.Geometry, 0, len(cfg.Obstacles))
	for i := range cfg.Obstacles {
		g, err := cfg.Obstacles[i].ParseConfig()
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, g)
	}
	if cfg.RandomField != nil {
		field, err := NewRandomCylinderField(*cfg.RandomField, cfg.Bounds.Min, cfg.Bounds.Max, keepClear)
		if err != nil {
			return nil, err
		}
		logger.Debugw("generated random obstacle field", "seed", cfg.RandomField.Seed, "count", len(field))
		obstacles = append(obstacles, field...)
	}
	env, err := NewEnvironment(cfg.Bounds.Min, cfg.Bounds.Max, obstacles, cfg.CollisionBuffer)
	if err != nil {
		return nil, err
	}
	logger.Infow("environment ready", "obstacles", len(obstacles), "collision_buffer", cfg.CollisionBuffer)
	return env, nil
}
