package todo

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Priority is the ordinal importance of a todo.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Low"
	}
}

// NormalizePriority coerces anything outside Low..High to Low.
func NormalizePriority(v int) Priority {
	p := Priority(v)
	if !p.Valid() {
		return PriorityLow
	}
	return p
}

// ParsePriority reads a leading number from s, truncating any fraction.
// Unparsable input yields Low.
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityLow
	}
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return PriorityLow
	}
	return NormalizePriority(int(math.Trunc(f)))
}

// UnmarshalJSON accepts a number, a numeric string or a priority name.
func (p *Priority) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = PriorityLow
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ParsePriority(s)
		return nil
	}
	*p = ParsePriority(string(b))
	return nil
}
