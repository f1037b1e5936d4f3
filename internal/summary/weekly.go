package summary

import "time"

// WindowDays is the length of the trailing window, today included.
const WindowDays = 7

type (
	// Entry is the part of a record the aggregation reads. DistanceMiles is canonical.
	Entry struct {
		Date            time.Time
		DurationMinutes float64
		DistanceMiles   float64
	}

	WeeklyTotals struct {
		Count                int       `json:"count"`
		TotalDurationMinutes float64   `json:"totalDurationMinutes"`
		TotalDistanceKm      float64   `json:"totalDistanceKm"`
		TotalDistanceMiles   float64   `json:"totalDistanceMiles"`
		WindowStart          time.Time `json:"windowStart"`
		WindowEnd            time.Time `json:"windowEnd"`
	}
)

// WindowStart is midnight, in now's location, six calendar days before now.
func WindowStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-(WindowDays-1), 0, 0, 0, 0, now.Location())
}

// InWindow reports whether date falls in [WindowStart(now), now]. A zero date never does.
func InWindow(now, date time.Time) bool {
	if date.IsZero() {
		return false
	}
	return !date.Before(WindowStart(now)) && !date.After(now)
}

// Weekly totals the entries dated inside the trailing window. Entries without
// a date are skipped; negative values are summed as they are.
func Weekly(now time.Time, entries []Entry) WeeklyTotals {
	start := WindowStart(now)
	totals := WeeklyTotals{WindowStart: start, WindowEnd: now}

	for _, e := range entries {
		if e.Date.IsZero() || e.Date.Before(start) || e.Date.After(now) {
			continue
		}
		totals.Count++
		totals.TotalDurationMinutes += e.DurationMinutes
		totals.TotalDistanceMiles += e.DistanceMiles
	}

	totals.TotalDistanceKm = MilesToKm(totals.TotalDistanceMiles)
	return totals
}
