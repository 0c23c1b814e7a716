package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/trajectory"
)

var samplesHeader = []string{"t", "x", "y", "z"}

// printf prints a message with a newline to the given writer.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

const (
	loggerKey  = "logger"
	logFileKey = "log-file"
)

// setupLogging builds the command logger once per run. Logs go to the app's error stream so
// that stdout stays parseable.
func setupLogging(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", logLevelFlag)
	}
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}

	logger := logging.NewBlankLogger("gridplan")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if path := c.String(logFileFlag); path != "" {
		rotating := &lumberjack.Logger{Filename: path, MaxSize: 10, MaxBackups: 3}
		logger.AddAppender(logging.NewWriterAppender(rotating))
		c.App.Metadata[logFileKey] = rotating
	}
	logger.SetLevel(level)
	c.App.Metadata[loggerKey] = logger
	return nil
}

func closeLogging(c *cli.Context) error {
	rotating, ok := c.App.Metadata[logFileKey].(*lumberjack.Logger)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, logFileKey)
	return rotating.Close()
}

// newLogger returns the logger set up for this run.
func newLogger(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(logging.Logger); ok {
		return logger
	}
	logger := logging.NewBlankLogger("gridplan")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	return logger
}

// parsePoint parses "x,y,z" into a vector.
func parsePoint(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected x,y,z but got %q", s)
	}
	coords, err := parseFloats(parts)
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "cannot parse point %q", s)
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	var errs error
	vals := lo.Map(fields, func(f string, _ int) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		errs = multierr.Append(errs, err)
		return v
	})
	return vals, errs
}

// readWaypoints reads x,y,z rows from a CSV file. A first row that doesn't parse as numbers is
// treated as a header.
func readWaypoints(path string) ([]r3.Vector, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open waypoints file %q", path)
	}
	//nolint:errcheck
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read waypoints file %q", path)
	}

	waypoints := make([]r3.Vector, 0, len(records))
	for i, rec := range records {
		coords, err := parseFloats(rec)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, errors.Wrapf(err, "bad waypoint on line %d of %q", i+1, path)
		}
		waypoints = append(waypoints, r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return waypoints, nil
}

// writeSamples writes samples as a t,x,y,z CSV with a header row.
func writeSamples(w io.Writer, samples []trajectory.Sample) error {
	writer := csv.NewWriter(w)
	rows := lo.Map(samples, func(s trajectory.Sample, _ int) []string {
		return lo.Map([]float64{s.T, s.Position.X, s.Position.Y, s.Position.Z}, func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		})
	})
	if err := writer.Write(samplesHeader); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrap(err, "cannot write samples")
	}
	return nil
}

func writeSamplesFile(path string, samples []trajectory.Sample) error {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create samples file %q", path)
	}
	if err := writeSamples(f, samples); err != nil {
		//nolint:errcheck
		f.Close()
		return err
	}
	return f.Close()
}

// readPlannerOptions reads a JSON5 object into an untyped map for the planner options decoder.
// Comments and trailing commas are allowed, and ${VAR} references are expanded.
func readPlannerOptions(path string) (map[string]interface{}, error) {
	content, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read planner options %q", path)
	}
	extra := map[string]interface{}{}
	if err := json5.Unmarshal(content, &extra); err != nil {
		return nil, errors.Wrapf(err, "cannot parse planner options %q", path)
	}
	return extra, nil
}
