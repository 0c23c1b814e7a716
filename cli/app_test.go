package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/gridplan/trajectory"
	"go.viam.com/gridplan/utils"
)

const testEnvConfig = `{
	"bounds": {"min": {"X": 0, "Y": 0, "Z": 0}, "max": {"X": 10, "Y": 10, "Z": 10}},
	"obstacles": [
		{"type": "box", "x": 1, "y": 8, "z": 10, "translation": {"X": 4.5, "Y": 4, "Z": 5}, "label": "wall"}
	]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	test.That(t, os.WriteFile(p, []byte(content), 0o600), test.ShouldBeNil)
	return p
}

func runApp(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	err := app.Run(append([]string{"gridplan"}, args...))
	return out.String(), errOut.String(), err
}

func readSamples(t *testing.T, path string) [][]string {
	t.Helper()
	//nolint:gosec
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	test.That(t, err, test.ShouldBeNil)
	return rows
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", testEnvConfig)
	outPath := filepath.Join(dir, "samples.csv")
	plotPath := filepath.Join(dir, "axes.png")

	stdout, _, err := runApp("plan", "--env", envPath, "--start", "2,2,5", "--goal", "8,2,5",
		"--dt", "0.25", "--out", outPath, "--plot", plotPath)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	test.That(t, lines[0], test.ShouldStartWith, "0\t2.0000\t2.0000\t5.0000")
	test.That(t, lines[len(lines)-1], test.ShouldEndWith, "8.0000\t2.0000\t5.0000")

	rows := readSamples(t, outPath)
	test.That(t, rows[0], test.ShouldResemble, []string{"t", "x", "y", "z"})
	test.That(t, rows[1], test.ShouldResemble, []string{"0", "2", "2", "5"})
	test.That(t, rows[len(rows)-1][1:], test.ShouldResemble, []string{"8", "2", "5"})

	info, err := os.Stat(plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
}

func TestPlanCommandFailures(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", testEnvConfig)

	_, _, err := runApp("plan", "--env", envPath, "--start", "2,2,5", "--goal", "4.5,4,5")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "collides")

	_, _, err = runApp("plan", "--env", envPath, "--start", "2,2", "--goal", "8,2,5")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "start")

	_, _, err = runApp("plan", "--env", envPath, "--start", "2,2,5", "--goal", "8,2,5", "--step", "0")
	test.That(t, err, test.ShouldNotBeNil)

	// A wall spanning the whole workspace cuts the goal off from the start.
	split := `{
		"bounds": {"min": {"X": 0, "Y": 0, "Z": 0}, "max": {"X": 10, "Y": 10, "Z": 10}},
		"obstacles": [{"type": "box", "x": 1, "y": 10, "z": 10, "translation": {"X": 4.5, "Y": 5, "Z": 5}}]
	}`
	splitPath := writeFile(t, dir, "split.json", split)
	_, stderr, err := runApp("plan", "--env", splitPath, "--start", "1,1,1", "--goal", "8,1,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to find path")
	test.That(t, stderr, test.ShouldContainSubstring, "no path found")
}

func TestPlanCommandOptionsAndEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", testEnvConfig)
	optsPath := writeFile(t, dir, "opts.json5", "{\n\t// coarse lattice\n\tstep_size: 1,\n}\n")

	stdout, stderr, err := runApp("--debug", "plan", "--env", envPath, "--start", "1,1,1", "--goal", "3,1,1",
		"--planner-options", optsPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stderr, test.ShouldContainSubstring, "with step 1")
	test.That(t, stderr, test.ShouldContainSubstring, "expanded")
	test.That(t, stdout, test.ShouldContainSubstring, "2\t3.0000\t1.0000\t1.0000")

	t.Setenv(utils.StepSizeEnvVar, "2")
	_, stderr, err = runApp("plan", "--env", envPath, "--start", "1,1,1", "--goal", "3,1,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stderr, test.ShouldContainSubstring, "with step 2")

	badOpts := writeFile(t, dir, "bad.json", `{"step_size": -1}`)
	_, _, err = runApp("plan", "--env", envPath, "--start", "1,1,1", "--goal", "3,1,1", "--planner-options", badOpts)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoggingFlags(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", testEnvConfig)
	logPath := filepath.Join(dir, "gridplan.log")

	_, stderr, err := runApp("--log-file", logPath, "plan", "--env", envPath, "--start", "1,1,1", "--goal", "3,1,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stderr, test.ShouldContainSubstring, "planning from")
	//nolint:gosec
	logged, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(logged), test.ShouldContainSubstring, "planning from")
	test.That(t, string(logged), test.ShouldContainSubstring, "path found")

	_, stderr, err = runApp("--log-level", "warn", "plan", "--env", envPath, "--start", "1,1,1", "--goal", "3,1,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stderr, test.ShouldNotContainSubstring, "planning from")

	_, _, err = runApp("--log-level", "verbose", "check-env", "--env", envPath)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "log-level")
}

func TestSampleCommand(t *testing.T) {
	dir := t.TempDir()
	wpPath := writeFile(t, dir, "path.csv", "x,y,z\n0,0,0\n0,0,0\n3,0,0\n")

	stdout, _, err := runApp("sample", "--waypoints", wpPath, "--speed", "1", "--dt", "1")
	test.That(t, err, test.ShouldBeNil)
	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rows, test.ShouldHaveLength, 5)
	test.That(t, rows[1], test.ShouldResemble, []string{"0", "0", "0", "0"})
	test.That(t, rows[4], test.ShouldResemble, []string{"3", "3", "0", "0"})

	single := writeFile(t, dir, "single.csv", "5,5,5\n")
	outPath := filepath.Join(dir, "out.csv")
	_, stderr, err := runApp("sample", "--waypoints", single, "--out", outPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stderr, test.ShouldContainSubstring, "degenerate")
	test.That(t, readSamples(t, outPath), test.ShouldHaveLength, 1)

	_, _, err = runApp("sample", "--waypoints", single, "--plot", filepath.Join(dir, "none.png"))
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp("sample", "--waypoints", wpPath, "--speed", "-1")
	test.That(t, err, test.ShouldNotBeNil)

	bad := writeFile(t, dir, "bad.csv", "0,0,0\n1,x,0\n")
	_, _, err = runApp("sample", "--waypoints", bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")
}

func TestCheckEnvCommand(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", testEnvConfig)

	stdout, _, err := runApp("check-env", "--env", envPath, "--start", "1,1,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stdout, test.ShouldContainSubstring, "1 obstacles")
	test.That(t, stdout, test.ShouldContainSubstring, "Type: Box")

	_, _, err = runApp("check-env", "--env", envPath, "--goal", "11,1,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside")

	// Both probes are blocked; start is always the one reported.
	for i := 0; i < 5; i++ {
		_, _, err = runApp("check-env", "--env", envPath, "--goal", "4.5,4,5", "--start", "11,1,1")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldStartWith, "start")
	}

	badEnv := writeFile(t, dir, "bad.json", `{"obstacles": []}`)
	_, _, err = runApp("check-env", "--env", badEnv)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bounds")
}

func TestParsePoint(t *testing.T) {
	pt, err := parsePoint(" 1.5, -2,3e1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt, test.ShouldResemble, r3.Vector{X: 1.5, Y: -2, Z: 30})

	_, err = parsePoint("1,2")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = parsePoint("1,b,c")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer
	err := writeSamples(&buf, []trajectory.Sample{{T: 0.5, Position: r3.Vector{X: 1, Y: 2.25, Z: -3}}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, "t,x,y,z\n0.5,1,2.25,-3\n")
}
