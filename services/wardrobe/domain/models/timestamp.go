package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is a point in time serialized as an RFC 3339 string.
// Missing, null or unparseable values decode to the zero time, which sorts
// before every real date.
type Timestamp struct {
	time.Time
}

// At wraps t as a UTC Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MarshalJSON writes the zero time as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON never fails on bad input; it records the zero time instead.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

// Equal reports whether t and u are the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time)
}
