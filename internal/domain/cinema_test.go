package domain

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "valid midnight", input: "00:00", want: TimeOfDay{}},
		{name: "valid end of day", input: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a time", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimeOfDay(%q) expected error, got %v", tt.input, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) unexpected error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayOn(t *testing.T) {
	date := time.Date(2026, 9, 1, 17, 45, 12, 0, time.UTC)

	got := TimeOfDay{Hour: 10, Minute: 30}.On(date)
	want := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	if !(TimeOfDay{Hour: 9}).Before(TimeOfDay{Hour: 10}) {
		t.Error("09:00 should be before 10:00")
	}

	if !(TimeOfDay{Hour: 9, Minute: 15}).Before(TimeOfDay{Hour: 9, Minute: 30}) {
		t.Error("09:15 should be before 09:30")
	}

	if (TimeOfDay{Hour: 10}).Before(TimeOfDay{Hour: 10}) {
		t.Error("a time of day is not before itself")
	}
}
