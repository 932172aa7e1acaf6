package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dayInputLayout = "2006-01-02"

// ParseDayInput accepts a form-style YYYY-MM-DD day or a full RFC 3339 instant.
func ParseDayInput(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if location == nil {
		location = time.UTC
	}

	if parsed, err := time.ParseInLocation(dayInputLayout, value, location); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseMonthInput accepts YYYY-MM and returns the first day of that month.
func ParseMonthInput(raw string, location *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation("2006-01", value, location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}
