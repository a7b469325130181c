package songs

import (
	"fmt"
	"unicode/utf8"
)

// maxNameLength is the upper bound on song name length, counted in
// runes so multi-byte names are not penalized.
const maxNameLength = 200

func nameViolation(name string) *FieldViolation {
	if name == "" {
		return &FieldViolation{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &FieldViolation{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	return nil
}

func pathViolation(path string) *FieldViolation {
	if path == "" {
		return &FieldViolation{Field: "path", Reason: "must not be empty"}
	}
	return nil
}

func playsViolation(plays int) *FieldViolation {
	if plays < 0 {
		return &FieldViolation{Field: "plays", Reason: "must not be negative"}
	}
	return nil
}

// validateCreate checks a create payload, collecting every violation
// rather than stopping at the first. Name and path are mandatory.
func validateCreate(p CreateParams) error {
	var violations []FieldViolation
	if v := nameViolation(p.Name); v != nil {
		violations = append(violations, *v)
	}
	if v := pathViolation(p.Path); v != nil {
		violations = append(violations, *v)
	}
	if p.Plays != nil {
		if v := playsViolation(*p.Plays); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// validateUpdate checks only the fields present in a partial update,
// each against the same constraints create applies.
func validateUpdate(p UpdateParams) error {
	var violations []FieldViolation
	if p.Name != nil {
		if v := nameViolation(*p.Name); v != nil {
			violations = append(violations, *v)
		}
	}
	if p.Path != nil {
		if v := pathViolation(*p.Path); v != nil {
			violations = append(violations, *v)
		}
	}
	if p.Plays != nil {
		if v := playsViolation(*p.Plays); v != nil {
			violations = append(violations, *v)
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
