package utils

import (
	"os"
	"strconv"

	"go.viam.com/gridplan/logging"
)

const (
	// StepSizeEnvVar overrides the default lattice step size when set.
	StepSizeEnvVar = "GRIDPLAN_STEP_SIZE"

	// AverageSpeedEnvVar overrides the default trajectory average speed when set.
	AverageSpeedEnvVar = "GRIDPLAN_AVERAGE_SPEED"

	// RandomSeedEnvVar overrides the seed of a random obstacle field when set.
	RandomSeedEnvVar = "GRIDPLAN_RANDOM_SEED"
)

// GetenvFloat returns the float value of the environment variable name, or defaultValue when the
// variable is unset. Unparsable values are logged and fall back to defaultValue.
func GetenvFloat(name string, defaultValue float64, logger logging.Logger) float64 {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logger.Warnf("Failed to parse %s env var %q, falling back to default %v", name, val, defaultValue)
		return defaultValue
	}
	return parsed
}

// GetenvInt is GetenvFloat for integers.
func GetenvInt(name string, defaultValue int, logger logging.Logger) int {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		logger.Warnf("Failed to parse %s env var %q, falling back to default %v", name, val, defaultValue)
		return defaultValue
	}
	return parsed
}
