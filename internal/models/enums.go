package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilterValue = errors.New("invalid filter value")

// InvalidFilterValueError names the field that failed to parse
// and the raw input it was given. It matches ErrInvalidFilterValue.
type InvalidFilterValueError struct {
	Field string
	Value string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("invalid %s value: %s", e.Field, e.Value)
}

func (e *InvalidFilterValueError) Is(target error) bool {
	return target == ErrInvalidFilterValue
}

// ParsePriority matches raw case-insensitively against the known priorities.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(raw))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", &InvalidFilterValueError{Field: "priority", Value: raw}
}

// ParseStatus matches raw case-insensitively against the known statuses.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(raw))
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return s, nil
	}
	return "", &InvalidFilterValueError{Field: "status", Value: raw}
}
