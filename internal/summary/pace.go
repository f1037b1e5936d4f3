package summary

import "strconv"

// Pace is minutes per unit of distance. It is only defined when both inputs are positive.
func Pace(durationMinutes, distance float64) (float64, bool) {
	if !(durationMinutes > 0) || !(distance > 0) {
		return 0, false
	}
	return durationMinutes / distance, true
}

// FormatPace renders Pace to one decimal place, or "" when pace is undefined.
func FormatPace(durationMinutes, distance float64) string {
	pace, ok := Pace(durationMinutes, distance)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(pace, 'f', 1, 64)
}
