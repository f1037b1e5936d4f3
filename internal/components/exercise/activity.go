package exercise

import "strings"

// ActivityType is the closed set of activities a record may carry.
// Validation, the CLI and the client all read the same list.
type ActivityType string

const (
	ActivityWalk     ActivityType = "Walk"
	ActivityRun      ActivityType = "Run"
	ActivityPlay     ActivityType = "Play"
	ActivitySwim     ActivityType = "Swim"
	ActivityHike     ActivityType = "Hike"
	ActivityTraining ActivityType = "Training"
	ActivityOther    ActivityType = "Other"
)

// ActivityTypes lists the accepted values in display order.
var ActivityTypes = []ActivityType{
	ActivityWalk,
	ActivityRun,
	ActivityPlay,
	ActivitySwim,
	ActivityHike,
	ActivityTraining,
	ActivityOther,
}

func (a ActivityType) Valid() bool {
	for _, t := range ActivityTypes {
		if a == t {
			return true
		}
	}
	return false
}

// ParseActivityType matches case-insensitively and returns the canonical
// spelling. It is for user input; the API only accepts the exact names.
func ParseActivityType(s string) (ActivityType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range ActivityTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return ActivityType(s), false
}

// ActivityTypeNames is the accepted set as a comma separated list.
func ActivityTypeNames() string {
	names := make([]string, len(ActivityTypes))
	for i, t := range ActivityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
