package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseID parses a positive numeric identifier from a path parameter
func ParseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// ParseTime parses an RFC3339 timestamp from a query parameter
func ParseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC3339", raw)
	}
	return t, nil
}
