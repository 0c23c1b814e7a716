// Package cli contains all the functionality of the gridplan command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/trajectory"
)

// Flags.
const (
	debugFlag    = "debug"
	logLevelFlag = "log-level"
	logFileFlag  = "log-file"

	envFlag            = "env"
	randomSeedFlag     = "random-seed"
	startFlag          = "start"
	goalFlag           = "goal"
	stepFlag           = "step"
	plannerOptionsFlag = "planner-options"
	speedFlag          = "speed"
	dtFlag             = "dt"
	outFlag            = "out"
	plotFlag           = "plot"
	waypointsFlag      = "waypoints"
)

func trajectoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  speedFlag,
			Value: trajectory.DefaultAverageSpeed,
			Usage: "average speed used to time the trajectory, overrides $GRIDPLAN_AVERAGE_SPEED",
		},
		&cli.Float64Flag{
			Name:  dtFlag,
			Value: trajectory.DefaultSampleStep,
			Usage: "trajectory sampling period in seconds",
		},
		&cli.StringFlag{
			Name:  outFlag,
			Usage: "write sampled trajectory as t,x,y,z CSV to `FILE`",
		},
		&cli.StringFlag{
			Name:  plotFlag,
			Usage: "write x/y/z time series plots to `FILE` (png, svg, pdf)",
		},
	}
}

var app = &cli.App{
	Name:            "gridplan",
	Usage:           "plan collision-free paths on a 3D lattice and fit smooth trajectories through them",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging, same as --log-level debug",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Value: "info",
			Usage: "minimum level logged: debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  logFileFlag,
			Usage: "also write logs to `FILE`, rotated once it reaches 10 MB",
		},
	},
	Before: setupLogging,
	After:  closeLogging,
	Commands: []*cli.Command{
		{
			Name:      "plan",
			Usage:     "plan a path through an environment and sample a trajectory along it",
			UsageText: "gridplan plan --env env.json --start 0,0,0 --goal 10,10,2 [--out samples.csv] [--plot axes.png]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     envFlag,
					Required: true,
					Usage:    "environment configuration `FILE`",
				},
				&cli.Int64Flag{
					Name:  randomSeedFlag,
					Usage: "override the seed of the environment's random obstacle field, overrides $GRIDPLAN_RANDOM_SEED",
				},
				&cli.StringFlag{
					Name:     startFlag,
					Required: true,
					Usage:    "start position as x,y,z",
				},
				&cli.StringFlag{
					Name:     goalFlag,
					Required: true,
					Usage:    "goal position as x,y,z",
				},
				&cli.Float64Flag{
					Name:  stepFlag,
					Value: motionplan.DefaultStepSize,
					Usage: "lattice step size, overrides $GRIDPLAN_STEP_SIZE and --planner-options",
				},
				&cli.StringFlag{
					Name:  plannerOptionsFlag,
					Usage: "JSON `FILE` with planner options",
				},
			}, trajectoryFlags()...),
			Action: PlanAction,
		},
		{
			Name:      "sample",
			Usage:     "fit and sample a trajectory through waypoints read from a CSV file",
			UsageText: "gridplan sample --waypoints path.csv [--speed 2] [--dt 0.1] [--out samples.csv]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     waypointsFlag,
					Required: true,
					Usage:    "x,y,z CSV `FILE` of waypoints",
				},
			}, trajectoryFlags()...),
			Action: SampleAction,
		},
		{
			Name:  "check-env",
			Usage: "validate an environment configuration",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     envFlag,
					Required: true,
					Usage:    "environment configuration `FILE`",
				},
				&cli.StringFlag{
					Name:  startFlag,
					Usage: "optional position as x,y,z that must be free",
				},
				&cli.StringFlag{
					Name:  goalFlag,
					Usage: "optional position as x,y,z that must be free",
				},
			},
			Action: CheckEnvAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	if app.Metadata == nil {
		app.Metadata = map[string]interface{}{}
	}
	return app
}
