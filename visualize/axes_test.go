package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/trajectory"
)

func TestNewAxesPlots(t *testing.T) {
	logger := logging.NewTestLogger(t)
	traj, err := trajectory.NewTrajectory([]r3.Vector{{}, {X: 0.5}, {X: 1, Y: 0.5}, {X: 1.5, Y: 0.5, Z: 0.5}}, 2, logger)
	test.That(t, err, test.ShouldBeNil)

	plots, err := NewAxesPlots(traj, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plots, test.ShouldHaveLength, 3)
	test.That(t, plots[0].Title.Text, test.ShouldEqual, "Generated Trajectory")
	test.That(t, plots[1].Y.Label.Text, test.ShouldEqual, "Y (m)")
	test.That(t, plots[2].X.Label.Text, test.ShouldEqual, "Time (s)")

	_, err = NewAxesPlots(traj, 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSaveAxesPlot(t *testing.T) {
	logger := logging.NewTestLogger(t)
	traj, err := trajectory.NewTrajectory([]r3.Vector{{}, {X: 3, Y: 1, Z: 2}}, 1, logger)
	test.That(t, err, test.ShouldBeNil)

	dir := t.TempDir()
	for _, name := range []string{"axes.png", "axes.svg"} {
		out := filepath.Join(dir, name)
		test.That(t, SaveAxesPlot(out, traj, 0.1), test.ShouldBeNil)
		info, err := os.Stat(out)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
	}

	err = SaveAxesPlot(filepath.Join(dir, "axes.bogus"), traj, 0.1)
	test.That(t, err, test.ShouldNotBeNil)

	degenerate, err := trajectory.NewTrajectory([]r3.Vector{{X: 5, Y: 5, Z: 5}}, 1, logger)
	test.That(t, err, test.ShouldBeNil)
	err = SaveAxesPlot(filepath.Join(dir, "none.png"), degenerate, 0.1)
	test.That(t, err, test.ShouldBeError, ErrNothingToPlot)
	_, err = os.Stat(filepath.Join(dir, "none.png"))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}
