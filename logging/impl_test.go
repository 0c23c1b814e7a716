package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

type BasicStruct struct {
	X int
	y string
	z string
}

type User struct {
	Name string
}

type StructWithStruct struct {
	x int
	Y User
	z string
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualTrimmed := strings.TrimSuffix(output, "\n")
	actualParts := strings.Split(actualTrimmed, "\t")
	expectedParts := strings.Split(expected, "\t")
	// Use the length of the first string as a weak verification of checking that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	// Log level.
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	// Logger name.
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	// Filename:line_number.
	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	// Log message.
	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])

	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	if len(actualParts) == 5 {
		return
	}

	expectedMap := make(map[string]any)
	err = json.Unmarshal([]byte(expectedParts[5]), &expectedMap)
	test.That(t, err, test.ShouldBeNil)

	actualMap := make(map[string]any)
	err = json.Unmarshal([]byte(actualParts[5]), &actualMap)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func newBufferedLogger(name string, level Level) (Logger, *bytes.Buffer) {
	notStdout := &bytes.Buffer{}
	logger := &impl{name, NewAtomicLevelAt(level), true, []Appender{NewWriterAppender(notStdout)}}
	return logger, notStdout
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, notStdout := newBufferedLogger("impl", DEBUG)

	logger.Info("impl Info log")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:67	impl Info log`)

	logger.Infof("impl %s log", "infof")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:131	impl infof log`)

	logger.Infow("impl logw", "key", "value")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:132	impl logw	{"key":"value"}`)

	logger.Infow("StructWithStruct", "key", "val", "StructWithStruct", StructWithStruct{1, User{"alice"}, "foo"})
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:123	StructWithStruct	{"StructWithStruct":{"Y":{"Name":"alice"}},"key":"val"}`)

	logger.Infow("BasicStruct", "implOneKey", "1val", "BasicStruct", BasicStruct{1, "alice", "foo"})
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:125	BasicStruct	{"BasicStruct":{"X":1},"implOneKey":"1val"}`)

	logger.Warnw("unpaired", "dangling")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	WARN	impl	logging/impl_test.go:125	unpaired	{"dangling":"unpaired log key"}`)
}

func TestLevelFiltering(t *testing.T) {
	logger, notStdout := newBufferedLogger("filter", WARN)

	logger.Debug("dropped")
	logger.Infof("dropped %d", 1)
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Errorf("kept %d", 2)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	ERROR	filter	logging/impl_test.go:1	kept 2`)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debug("now kept")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	DEBUG	filter	logging/impl_test.go:1	now kept`)
}

func TestSublogger(t *testing.T) {
	logger, notStdout := newBufferedLogger("parent", INFO)
	sub := logger.Sublogger("child")

	sub.Info("hello")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	parent.child	logging/impl_test.go:1	hello`)

	// Changing the sublogger level leaves the parent alone.
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)
	test.That(t, sub.Sync(), test.ShouldBeNil)
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("planning", "step", 0.5)
	logger.Info("done")

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("planning").Len(), test.ShouldEqual, 1)
	entry := logs.FilterMessage("planning").All()[0]
	test.That(t, entry.ContextMap()["step"], test.ShouldEqual, 0.5)
}

func TestLevelFromString(t *testing.T) {
	for input, expected := range map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
	} {
		level, err := LevelFromString(input)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)
}
