// Package visualize renders sampled trajectories as stacked per-axis time series.
package visualize

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/gridplan/trajectory"
)

// ErrNothingToPlot is returned for a trajectory without a fitted curve.
var ErrNothingToPlot = errors.New("trajectory is degenerate, nothing to plot")

const (
	figureWidth  = 10 * vg.Inch
	figureHeight = 7 * vg.Inch
)

type axisPanel struct {
	name  string
	color color.Color
	pick  func(s trajectory.Sample) float64
}

var panels = []axisPanel{
	{"X", color.RGBA{R: 200, A: 255}, func(s trajectory.Sample) float64 { return s.Position.X }},
	{"Y", color.RGBA{G: 150, A: 255}, func(s trajectory.Sample) float64 { return s.Position.Y }},
	{"Z", color.RGBA{B: 200, A: 255}, func(s trajectory.Sample) float64 { return s.Position.Z }},
}

// NewAxesPlots returns one plot per axis. Each shows the curve sampled every dt as a line and the
// waypoints at their time knots as points.
func NewAxesPlots(traj *trajectory.Trajectory, dt float64) ([]*plot.Plot, error) {
	if traj.Degenerate() {
		return nil, ErrNothingToPlot
	}
	samples, err := traj.Sample(dt)
	if err != nil {
		return nil, err
	}
	knots := traj.TimeKnots()
	waypoints := lo.Map(traj.Waypoints(), func(wp r3.Vector, i int) trajectory.Sample {
		return trajectory.Sample{T: knots[i], Position: wp}
	})

	plots := make([]*plot.Plot, 0, len(panels))
	for i, panel := range panels {
		p := plot.New()
		if i == 0 {
			p.Title.Text = "Generated Trajectory"
		}
		if i == len(panels)-1 {
			p.X.Label.Text = "Time (s)"
		}
		p.Y.Label.Text = panel.name + " (m)"
		p.Add(plotter.NewGrid())

		line, err := plotter.NewLine(toXYs(samples, panel.pick))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot build %s trajectory line", panel.name)
		}
		line.Color = panel.color
		line.Width = vg.Points(1)

		points, err := plotter.NewScatter(toXYs(waypoints, panel.pick))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot build %s path points", panel.name)
		}
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(2.5)
		points.GlyphStyle.Color = color.Black

		p.Add(line, points)
		p.Legend.Add("Trajectory "+panel.name+"(t)", line)
		p.Legend.Add("Path Points", points)
		p.Legend.Top = true
		plots = append(plots, p)
	}
	return plots, nil
}

func toXYs(samples []trajectory.Sample, pick func(trajectory.Sample) float64) plotter.XYs {
	return lo.Map(samples, func(s trajectory.Sample, _ int) plotter.XY {
		return plotter.XY{X: s.T, Y: pick(s)}
	})
}

// SaveAxesPlot writes the three stacked axis plots of traj to path. The image format follows the
// file extension (png, svg, pdf, ...).
func SaveAxesPlot(path string, traj *trajectory.Trajectory, dt float64) error {
	plots, err := NewAxesPlots(traj, dt)
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	canvas, err := draw.NewFormattedCanvas(figureWidth, figureHeight, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported plot file %q", path)
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	grid := lo.Map(plots, func(p *plot.Plot, _ int) []*plot.Plot { return []*plot.Plot{p} })
	dc := draw.New(canvas)
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create plot file %q", path)
	}
	if _, err := canvas.WriteTo(f); err != nil {
		//nolint:errcheck
		f.Close()
		return errors.Wrapf(err, "cannot write plot file %q", path)
	}
	return f.Close()
}
