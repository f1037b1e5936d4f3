package exercise

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

var ErrNotFound = errors.New("record not found")

// ValidationError lists every constraint an input violated.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Validate checks a create payload. Pet id is trimmed in place.
func (in *CreateRecordIn) Validate() error {
	v := &ValidationError{}
	in.PetID = strings.TrimSpace(in.PetID)

	checkPetID(v, in.PetID)
	if in.Date.IsZero() {
		v.add("date is required and must be a valid timestamp")
	}
	checkActivityType(v, in.ActivityType)
	if in.DurationMinutes == nil {
		v.add("durationMinutes is required")
	} else {
		checkNonNegative(v, "durationMinutes", *in.DurationMinutes)
	}
	checkNonNegative(v, "distanceMiles", in.DistanceMiles)
	checkNotes(v, in.Notes)

	return v.orNil()
}

// Validate checks only the fields present in the update.
func (in *UpdateRecordIn) Validate() error {
	v := &ValidationError{}

	if in.PetID != nil {
		trimmed := strings.TrimSpace(*in.PetID)
		in.PetID = &trimmed
		checkPetID(v, trimmed)
	}
	if in.Date != nil && in.Date.IsZero() {
		v.add("date must be a valid timestamp")
	}
	if in.ActivityType != nil {
		checkActivityType(v, *in.ActivityType)
	}
	if in.DurationMinutes != nil {
		checkNonNegative(v, "durationMinutes", *in.DurationMinutes)
	}
	if in.DistanceMiles != nil {
		checkNonNegative(v, "distanceMiles", *in.DistanceMiles)
	}
	if in.Notes != nil {
		checkNotes(v, *in.Notes)
	}

	return v.orNil()
}

func checkPetID(v *ValidationError, petID string) {
	switch {
	case petID == "":
		v.add("petId is required")
	case utf8.RuneCountInString(petID) > MaxPetIDLength:
		v.add("petId must be at most %d characters", MaxPetIDLength)
	}
}

func checkActivityType(v *ValidationError, a ActivityType) {
	if a == "" {
		v.add("activityType is required")
		return
	}
	if !a.Valid() {
		v.add("activityType %q is not one of: %s", string(a), ActivityTypeNames())
	}
}

func checkNonNegative(v *ValidationError, field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.add("%s must be a finite number", field)
		return
	}
	if value < 0 {
		v.add("%s must be greater than or equal to 0", field)
	}
}

func checkNotes(v *ValidationError, notes string) {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		v.add("notes must be at most %d characters", MaxNotesLength)
	}
}
