package exercise

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Layouts accepted for a session date, most specific first. The minute layout
// is what an HTML datetime-local input submits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is the session date of a record. Malformed input decodes to the
// zero value rather than failing the surrounding document.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp returns the zero Timestamp and false when no layout matches.
// Layouts without an offset are read in time.Local.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if bytes.Equal(data, []byte("null")) || json.Unmarshal(data, &raw) != nil {
		*t = Timestamp{}
		return nil
	}
	*t, _ = ParseTimestamp(raw)
	return nil
}
