package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIntDefault returns def for a blank value and an error for anything that is not an integer.
func ParseIntDefault(value string, def int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse %q as integer: %w", value, err)
	}
	return parsed, nil
}
