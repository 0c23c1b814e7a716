package cli

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/gridplan/environment"
	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/trajectory"
	"go.viam.com/gridplan/utils"
	"go.viam.com/gridplan/visualize"
)

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context) error {
	logger := newLogger(c)

	start, err := parsePoint(c.String(startFlag))
	if err != nil {
		return errors.Wrap(err, "error parsing start flag")
	}
	goal, err := parsePoint(c.String(goalFlag))
	if err != nil {
		return errors.Wrap(err, "error parsing goal flag")
	}

	cfg, err := environment.ReadConfig(c.String(envFlag))
	if err != nil {
		return err
	}
	if cfg.RandomField != nil {
		seed := int64(utils.GetenvInt(utils.RandomSeedEnvVar, int(cfg.RandomField.Seed), logger))
		if c.IsSet(randomSeedFlag) {
			seed = c.Int64(randomSeedFlag)
		}
		cfg.RandomField.Seed = seed
	}
	env, err := environment.NewFromConfig(cfg, []r3.Vector{start, goal}, logger.Sublogger("environment"))
	if err != nil {
		return err
	}
	if err := checkFree(env, "start", start); err != nil {
		return err
	}
	if err := checkFree(env, "goal", goal); err != nil {
		return err
	}

	opts := motionplan.NewBasicPlannerOptions()
	if path := c.String(plannerOptionsFlag); path != "" {
		extra, err := readPlannerOptions(path)
		if err != nil {
			return err
		}
		if opts, err = motionplan.NewPlannerOptionsFromExtra(extra); err != nil {
			return err
		}
	} else {
		opts.StepSize = utils.GetenvFloat(utils.StepSizeEnvVar, opts.StepSize, logger)
	}
	if c.IsSet(stepFlag) {
		opts.StepSize = c.Float64(stepFlag)
	}

	planner, err := motionplan.NewGridPlanner(env, opts, logger.Sublogger("motionplan"))
	if err != nil {
		return err
	}
	logger.Infof("planning from %v to %v with step %v", start, goal, opts.StepSize)
	path, meta, err := planner.Plan(start, goal)
	if err != nil {
		return err
	}
	if c.Bool(debugFlag) {
		meta.OutputTiming(c.App.ErrWriter)
	}
	if len(path) == 0 {
		logger.Errorw("no path found", "expanded", meta.NodesExpanded, "duration", meta.Duration)
		return motionplan.NewPlannerFailedError()
	}
	logger.Infow("path found", "waypoints", len(path), "length", motionplan.PathLength(path), "duration", meta.Duration)
	for i, wp := range path {
		printf(c.App.Writer, "%d\t%.4f\t%.4f\t%.4f", i, wp.X, wp.Y, wp.Z)
	}

	return emitTrajectory(c, path, logger)
}

// SampleAction is the corresponding Action for 'sample'.
func SampleAction(c *cli.Context) error {
	logger := newLogger(c)
	waypoints, err := readWaypoints(c.String(waypointsFlag))
	if err != nil {
		return err
	}
	return emitTrajectory(c, waypoints, logger)
}

// emitTrajectory fits a trajectory through waypoints and writes whichever outputs were requested.
func emitTrajectory(c *cli.Context, waypoints []r3.Vector, logger logging.Logger) error {
	speed := utils.GetenvFloat(utils.AverageSpeedEnvVar, trajectory.DefaultAverageSpeed, logger)
	if c.IsSet(speedFlag) {
		speed = c.Float64(speedFlag)
	}
	dt := c.Float64(dtFlag)

	traj, err := trajectory.NewTrajectory(waypoints, speed, logger.Sublogger("trajectory"))
	if err != nil {
		return err
	}
	samples, err := traj.Sample(dt)
	if err != nil {
		return err
	}
	if traj.Degenerate() {
		logger.Warn("trajectory is degenerate, no samples produced")
	} else {
		logger.Infow("trajectory fitted",
			"duration", traj.Duration(), "samples", len(samples), "knot_deviation", traj.KnotDeviation())
	}

	if out := c.String(outFlag); out != "" {
		if err := writeSamplesFile(out, samples); err != nil {
			return err
		}
		logger.Infof("wrote %d samples to %s", len(samples), out)
	} else if !traj.Degenerate() {
		if err := writeSamples(c.App.Writer, samples); err != nil {
			return err
		}
	}

	if plotPath := c.String(plotFlag); plotPath != "" {
		if err := visualize.SaveAxesPlot(plotPath, traj, dt); err != nil {
			return err
		}
		logger.Infof("wrote plot to %s", plotPath)
	}
	return nil
}

// CheckEnvAction is the corresponding Action for 'check-env'.
func CheckEnvAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := environment.ReadConfig(c.String(envFlag))
	if err != nil {
		return err
	}

	// Probes are checked in flag order so the reported failure is stable.
	var names []string
	var keepClear []r3.Vector
	for _, name := range []string{startFlag, goalFlag} {
		if !c.IsSet(name) {
			continue
		}
		pt, err := parsePoint(c.String(name))
		if err != nil {
			return errors.Wrapf(err, "error parsing %s flag", name)
		}
		names = append(names, name)
		keepClear = append(keepClear, pt)
	}

	env, err := environment.NewFromConfig(cfg, keepClear, logger)
	if err != nil {
		return err
	}
	for i, name := range names {
		if err := checkFree(env, name, keepClear[i]); err != nil {
			return err
		}
	}
	printf(c.App.Writer, "%s", env.String())
	return nil
}

func checkFree(env motionplan.Environment, name string, pt r3.Vector) error {
	if env.IsOutside(pt) {
		return errors.Errorf("%s %v is outside the environment bounds", name, pt)
	}
	if env.IsCollide(pt) {
		return errors.Errorf("%s %v collides with an obstacle", name, pt)
	}
	return nil
}
