package exercise

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01T08:30:00Z", time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC)},
		{"2025-03-01T08:30:00.250+02:00", time.Date(2025, time.March, 1, 6, 30, 0, 250_000_000, time.UTC)},
		{"2025-03-01T08:30", time.Date(2025, time.March, 1, 8, 30, 0, 0, time.Local)},
		{"2025-03-01T08:30:15", time.Date(2025, time.March, 1, 8, 30, 15, 0, time.Local)},
		{"2025-03-01", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, ok := ParseTimestamp(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestampMalformedDecodesToZero(t *testing.T) {
	for _, raw := range []string{`"yesterday"`, `""`, `null`, `12345`, `"2025-13-45"`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, ts.IsZero(), raw)
	}
}

func TestRecordWithBadDateStillDecodes(t *testing.T) {
	body := `[
		{"id":"1","petId":"p","date":"not a date","activityType":"Walk","durationMinutes":10,"distanceMiles":1},
		{"id":"2","petId":"p","date":"2025-03-01T08:00:00Z","activityType":"Run","durationMinutes":20,"distanceMiles":2}
	]`

	var records []Record
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	require.Len(t, records, 2)
	assert.True(t, records[0].Date.IsZero())
	assert.False(t, records[1].Date.IsZero())
}

func TestTimestampMarshal(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-01T08:30:00Z"`, string(out))

	out, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
