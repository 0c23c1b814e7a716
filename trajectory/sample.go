package trajectory

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// Strides landing within this fraction of dt before the final knot are replaced by the knot.
	endTolerance = 1e-9
	// MaxSamples bounds the number of strides a single call may produce.
	MaxSamples = 1 << 24
)

// SampleTimes returns 0, dt, 2dt, ... up to but excluding the final knot, followed by the final
// knot time itself. A degenerate trajectory yields no times.
func (traj *Trajectory) SampleTimes(dt float64) ([]float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, errors.Errorf("sample step must be a positive finite number, got %v", dt)
	}
	if traj.Degenerate() {
		return []float64{}, nil
	}
	total := traj.Duration()
	strides := math.Ceil(total / dt)
	if strides > MaxSamples {
		return nil, errors.Errorf("sample step %v is too small for a %v s trajectory, it would produce more than %d samples",
			dt, total, MaxSamples)
	}
	limit := total - endTolerance*dt
	ts := make([]float64, 0, int(strides)+1)
	for i := 0; ; i++ {
		t := float64(i) * dt
		if t >= limit {
			break
		}
		ts = append(ts, t)
	}
	return append(ts, total), nil
}

// Sample evaluates the curve every dt seconds and always ends exactly at the final knot. Each call
// is independent of any previous one.
func (traj *Trajectory) Sample(dt float64) ([]Sample, error) {
	ts, err := traj.SampleTimes(dt)
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, len(ts))
	for i, t := range ts {
		samples[i] = Sample{T: t, Position: traj.Position(t)}
	}
	return samples, nil
}

// SampleAxes is Sample split into parallel time and coordinate columns.
func (traj *Trajectory) SampleAxes(dt float64) (ts, xs, ys, zs []float64, err error) {
	samples, err := traj.Sample(dt)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ts = make([]float64, len(samples))
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	zs = make([]float64, len(samples))
	for i, s := range samples {
		ts[i], xs[i], ys[i], zs[i] = s.T, s.Position.X, s.Position.Y, s.Position.Z
	}
	return ts, xs, ys, zs, nil
}
