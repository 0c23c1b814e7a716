package motionplan

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// DefaultStepSize is the lattice edge length used when none is given.
	DefaultStepSize = 0.5

	// Closed-set keys round every coordinate to this unit (one decimal).
	defaultKeyResolution = 0.1
)

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		StepSize:      DefaultStepSize,
		KeyResolution: defaultKeyResolution,
	}
}

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a motion planning problem.
type PlannerOptions struct {
	// Length of one axis-aligned lattice move. Diagonal moves are step*sqrt(2) and step*sqrt(3).
	StepSize float64 `json:"step_size"`

	// Positions are rounded to multiples of this before being looked up in the closed set.
	KeyResolution float64 `json:"key_resolution"`
}

// NewPlannerOptionsFromExtra returns basic default settings updated by overridden parameters
// found in an untyped map, such as one decoded from a JSON or YAML document.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           opt,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating planner options decoder")
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, errors.Wrap(err, "error decoding planner options")
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

// Validate reports every invalid option at once.
func (p *PlannerOptions) Validate() error {
	var errs error
	if !(p.StepSize > 0) || math.IsInf(p.StepSize, 0) {
		errs = multierr.Append(errs, newInvalidStepSizeError(p.StepSize))
	}
	if !(p.KeyResolution > 0) || math.IsInf(p.KeyResolution, 0) {
		errs = multierr.Append(errs, errors.Errorf("key_resolution must be a positive finite number, got %v", p.KeyResolution))
	}
	return errs
}
