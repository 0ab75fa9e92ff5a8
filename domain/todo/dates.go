package todo

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DayLayout,
}

// ParseDate reads an ISO-8601 date or datetime. Values without an offset
// are read as UTC. The empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}

// OptionalTime tells an absent JSON field apart from an explicit null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// SomeTime returns a present OptionalTime holding t.
func SomeTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

// NullTime returns a present OptionalTime that clears the value.
func NullTime() OptionalTime {
	return OptionalTime{Set: true}
}

// IsZero reports whether the field is absent.
func (o OptionalTime) IsZero() bool {
	return !o.Set
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value.UTC().Format(time.RFC3339Nano))
}

func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	o.Value = t
	return nil
}
