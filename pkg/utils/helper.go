package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value. Zero, negative
// and unparseable input all fall back to the default.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
