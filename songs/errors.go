package songs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("songbook: song not found")

	// ErrUnavailable is returned when the backing store cannot be
	// reached or is not ready to serve requests.
	ErrUnavailable = errors.New("songbook: store unavailable")
)

// FieldViolation names a single violated constraint on a payload field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every constraint violated by a payload, so
// callers see all problems at once rather than one per attempt.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fmt.Sprintf("songbook: invalid payload: %s", strings.Join(fields, ", "))
}
