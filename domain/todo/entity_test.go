package todo

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSetCompleted(t *testing.T) {
	now := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	var td Todo

	td.SetCompleted(true, now)
	if !td.Completed || td.CompletedAt == nil || !td.CompletedAt.Equal(now) {
		t.Fatalf("SetCompleted(true) = %+v, want completed with completedAt %v", td, now)
	}

	td.SetCompleted(false, now.Add(time.Hour))
	if td.Completed || td.CompletedAt != nil {
		t.Errorf("SetCompleted(false) = %+v, want pending without completedAt", td)
	}
}

func TestApply(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	high := PriorityHigh
	invalid := Priority(7)

	tests := []struct {
		name        string
		patch       Patch
		wantChanged []string
		check       func(t *testing.T, td Todo)
	}{
		{
			name:        "title is trimmed",
			patch:       Patch{Title: strPtr("  Buy milk  ")},
			wantChanged: []string{"title"},
			check: func(t *testing.T, td Todo) {
				if td.Title != "Buy milk" {
					t.Errorf("Title = %q, want %q", td.Title, "Buy milk")
				}
			},
		},
		{
			name:        "priority out of range becomes low",
			patch:       Patch{Priority: &invalid},
			wantChanged: []string{"priority"},
			check: func(t *testing.T, td Todo) {
				if td.Priority != PriorityLow {
					t.Errorf("Priority = %v, want Low", td.Priority)
				}
			},
		},
		{
			name:        "priority high",
			patch:       Patch{Priority: &high},
			wantChanged: []string{"priority"},
			check: func(t *testing.T, td Todo) {
				if td.Priority != PriorityHigh {
					t.Errorf("Priority = %v, want High", td.Priority)
				}
			},
		},
		{
			name:        "completing sets completedAt",
			patch:       Patch{Completed: boolPtr(true)},
			wantChanged: []string{"completed"},
			check: func(t *testing.T, td Todo) {
				if !td.Completed || td.CompletedAt == nil || !td.CompletedAt.Equal(now) {
					t.Errorf("got completed=%v completedAt=%v, want true/%v", td.Completed, td.CompletedAt, now)
				}
			},
		},
		{
			name:        "explicit null clears due date",
			patch:       Patch{ExpectedCompletionDate: NullTime()},
			wantChanged: []string{"expectedCompletionDate"},
			check: func(t *testing.T, td Todo) {
				if td.ExpectedCompletionDate != nil {
					t.Errorf("ExpectedCompletionDate = %v, want nil", td.ExpectedCompletionDate)
				}
			},
		},
		{
			name:        "empty patch changes nothing",
			patch:       Patch{},
			wantChanged: nil,
			check: func(t *testing.T, td Todo) {
				if td.Title != "Original" {
					t.Errorf("Title = %q, want unchanged", td.Title)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := Todo{
				ID:                     "todo-1",
				OwnerID:                "owner-1",
				Title:                  "Original",
				CreatedAt:              created,
				ExpectedCompletionDate: &due,
			}
			changed := td.Apply(tt.patch, now)
			if len(changed) != len(tt.wantChanged) {
				t.Fatalf("Apply() changed = %v, want %v", changed, tt.wantChanged)
			}
			for i := range changed {
				if changed[i] != tt.wantChanged[i] {
					t.Errorf("Apply() changed[%d] = %q, want %q", i, changed[i], tt.wantChanged[i])
				}
			}
			if td.ID != "todo-1" || td.OwnerID != "owner-1" || !td.CreatedAt.Equal(created) {
				t.Errorf("Apply() touched immutable fields: %+v", td)
			}
			tt.check(t, td)
		})
	}
}

func TestDraftNormalize(t *testing.T) {
	d, err := Draft{Title: "  Write report ", Description: " draft ", Priority: 9}.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if d.Title != "Write report" || d.Description != "draft" || d.Priority != PriorityLow {
		t.Errorf("Normalize() = %+v", d)
	}

	_, err = Draft{Title: "   "}.Normalize()
	if !errors.Is(err, ErrEmptyTitle) || !errors.Is(err, ErrValidation) {
		t.Errorf("Normalize() error = %v, want ErrEmptyTitle", err)
	}
}

func TestPatchValidate(t *testing.T) {
	if err := (Patch{Title: strPtr(" \t")}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Validate() error = %v, want ErrEmptyTitle", err)
	}
	if err := (Patch{Completed: boolPtr(true)}).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		todo Todo
		want bool
	}{
		{"no due date", Todo{}, false},
		{"due in the past", Todo{ExpectedCompletionDate: &past}, true},
		{"due exactly now", Todo{ExpectedCompletionDate: &now}, false},
		{"due in the future", Todo{ExpectedCompletionDate: &future}, false},
		{"completed past due", Todo{Completed: true, ExpectedCompletionDate: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.todo.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriorityUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{`0`, PriorityLow},
		{`1`, PriorityMedium},
		{`2`, PriorityHigh},
		{`"2"`, PriorityHigh},
		{`1.9`, PriorityMedium},
		{`"high"`, PriorityHigh},
		{`5`, PriorityLow},
		{`-1`, PriorityLow},
		{`"abc"`, PriorityLow},
		{`null`, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p Priority
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if p != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, p, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "2024-05-30", want: time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)},
		{in: "2024-05-30T14:30", want: time.Date(2024, 5, 30, 14, 30, 0, 0, time.UTC)},
		{in: "2024-05-30T14:30:00.500Z", want: time.Date(2024, 5, 30, 14, 30, 0, 500_000_000, time.UTC)},
		{in: "2024-05-30T14:30:00+02:00", want: time.Date(2024, 5, 30, 12, 30, 0, 0, time.UTC)},
		{in: "next tuesday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.in, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseDate(%q) = %v, want nil", tt.in, got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionalTimeJSON(t *testing.T) {
	var body struct {
		Due OptionalTime `json:"due,omitzero"`
	}

	if err := json.Unmarshal([]byte(`{}`), &body); err != nil {
		t.Fatal(err)
	}
	if body.Due.Set {
		t.Errorf("absent field decoded as set")
	}

	if err := json.Unmarshal([]byte(`{"due":null}`), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Due.Set || body.Due.Value != nil {
		t.Errorf("null decoded as %+v, want set without value", body.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":"2024-06-01"}`), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Due.Set || body.Due.Value == nil || body.Due.Value.Day() != 1 {
		t.Errorf("date decoded as %+v", body.Due)
	}

	body.Due = OptionalTime{}
	out, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{}` {
		t.Errorf("Marshal(absent) = %s, want {}", out)
	}

	body.Due = NullTime()
	out, _ = json.Marshal(body)
	if string(out) != `{"due":null}` {
		t.Errorf("Marshal(null) = %s, want {\"due\":null}", out)
	}
}
