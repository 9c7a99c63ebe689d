package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv retrieves and parses an environment variable.
// Returns (value, true) if the variable is set and parses as T.
func GetEnv[T string | int | bool | time.Duration](key string) (T, bool) {
	value := os.Getenv(key)
	var zero T

	if value == "" {
		return zero, false
	}

	var result any
	switch any(zero).(type) {
	case string:
		result = value
	case int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return zero, false
		}
		result = v
	case bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return zero, false
		}
		result = v
	case time.Duration:
		v, err := time.ParseDuration(value)
		if err != nil {
			return zero, false
		}
		result = v
	default:
		return zero, false
	}

	return result.(T), true
}
