// Package summary holds the client-side arithmetic over exercise records:
// distance unit conversion, pace and the trailing seven-day totals.
// Everything here is pure; callers pass the clock in.
package summary

import (
	"fmt"
	"math"
	"strings"
)

// KmPerMile is the conversion factor between the canonical unit (miles) and kilometers.
const KmPerMile = 1.60934

type Unit string

const (
	Miles      Unit = "mi"
	Kilometers Unit = "km"
)

// ParseUnit accepts the short and long spellings of both units.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mi", "mile", "miles":
		return Miles, nil
	case "km", "kilometer", "kilometers", "kilometre", "kilometres":
		return Kilometers, nil
	}
	return "", fmt.Errorf("unknown distance unit %q (want mi or km)", s)
}

func MilesToKm(m float64) float64 {
	return m * KmPerMile
}

func KmToMiles(k float64) float64 {
	return k / KmPerMile
}

// Round2 rounds for display. Never store its result.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DistanceInput is the distance field of the record form. It keeps the
// canonical value in miles and only converts when displaying, so toggling the
// unit back and forth never drifts.
type DistanceInput struct {
	miles float64
	unit  Unit
}

func NewDistanceInput(unit Unit) *DistanceInput {
	if unit != Kilometers {
		unit = Miles
	}
	return &DistanceInput{unit: unit}
}

// Set stores a value typed in the current display unit.
func (d *DistanceInput) Set(value float64) {
	if d.unit == Kilometers {
		d.miles = KmToMiles(value)
		return
	}
	d.miles = value
}

// SetMiles loads a canonical value, e.g. when editing a stored record.
func (d *DistanceInput) SetMiles(miles float64) {
	d.miles = miles
}

// Toggle switches the display unit. The canonical value is untouched.
func (d *DistanceInput) Toggle() {
	if d.unit == Kilometers {
		d.unit = Miles
	} else {
		d.unit = Kilometers
	}
}

func (d *DistanceInput) Unit() Unit {
	return d.unit
}

// Miles is the value sent to the API.
func (d *DistanceInput) Miles() float64 {
	return d.miles
}

// Display is the value shown in the current unit, rounded to two decimals.
func (d *DistanceInput) Display() float64 {
	if d.unit == Kilometers {
		return Round2(MilesToKm(d.miles))
	}
	return Round2(d.miles)
}
