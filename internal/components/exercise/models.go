package exercise

import "time"

const (
	MaxNotesLength = 500
	MaxPetIDLength = 100
)

type (
	// Record is one exercise session. DistanceMiles is always in miles, whatever unit the user typed.
	Record struct {
		ID              string       `json:"id"`
		PetID           string       `json:"petId"`
		Date            Timestamp    `json:"date"`
		ActivityType    ActivityType `json:"activityType"`
		DurationMinutes float64      `json:"durationMinutes"`
		DistanceMiles   float64      `json:"distanceMiles"`
		Notes           string       `json:"notes,omitempty"`
		CreatedAt       time.Time    `json:"createdAt"`
		UpdatedAt       time.Time    `json:"updatedAt"`
	}

	// CreateRecordIn takes DurationMinutes as a pointer so a missing field is
	// told apart from an explicit 0.
	CreateRecordIn struct {
		PetID           string       `json:"petId"`
		Date            Timestamp    `json:"date"`
		ActivityType    ActivityType `json:"activityType"`
		DurationMinutes *float64     `json:"durationMinutes"`
		DistanceMiles   float64      `json:"distanceMiles"`
		Notes           string       `json:"notes,omitempty"`
	}

	UpdateRecordIn struct {
		PetID           *string       `json:"petId,omitempty"`
		Date            *Timestamp    `json:"date,omitempty"`
		ActivityType    *ActivityType `json:"activityType,omitempty"`
		DurationMinutes *float64      `json:"durationMinutes,omitempty"`
		DistanceMiles   *float64      `json:"distanceMiles,omitempty"`
		Notes           *string       `json:"notes,omitempty"`
	}

	ListQuery struct {
		PetID string `json:"petId,omitempty"`
	}

	DeleteRecordOut struct {
		OK bool `json:"ok"`
	}

	ErrorOut struct {
		Error string `json:"error"`
	}
)

// minutes is the duration to store. Validate has already rejected nil on the API path.
func (in CreateRecordIn) minutes() float64 {
	if in.DurationMinutes == nil {
		return 0
	}
	return *in.DurationMinutes
}

// Empty reports whether the update carries no fields.
func (in UpdateRecordIn) Empty() bool {
	return in.PetID == nil &&
		in.Date == nil &&
		in.ActivityType == nil &&
		in.DurationMinutes == nil &&
		in.DistanceMiles == nil &&
		in.Notes == nil
}

// Apply copies the present fields onto r. Used by stores that replace whole documents.
func (in UpdateRecordIn) Apply(r *Record) {
	if in.PetID != nil {
		r.PetID = *in.PetID
	}
	if in.Date != nil {
		r.Date = *in.Date
	}
	if in.ActivityType != nil {
		r.ActivityType = *in.ActivityType
	}
	if in.DurationMinutes != nil {
		r.DurationMinutes = *in.DurationMinutes
	}
	if in.DistanceMiles != nil {
		r.DistanceMiles = *in.DistanceMiles
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
}
