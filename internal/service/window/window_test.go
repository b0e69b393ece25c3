package window

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 10, hour, minute, 0, 0, time.Local)
}

func TestIsWithinWindow(t *testing.T) {
	tests := []struct {
		name  string
		t     time.Time
		start string
		end   string
		want  bool
	}{
		{name: "daytime inside", t: at(12, 0), start: "08:00", end: "22:00", want: true},
		{name: "daytime at start", t: at(8, 0), start: "08:00", end: "22:00", want: true},
		{name: "daytime at end", t: at(22, 0), start: "08:00", end: "22:00", want: true},
		{name: "daytime before start", t: at(7, 59), start: "08:00", end: "22:00", want: false},
		{name: "daytime after end", t: at(22, 1), start: "08:00", end: "22:00", want: false},
		{name: "overnight late evening", t: at(23, 30), start: "22:00", end: "06:00", want: true},
		{name: "overnight early morning", t: at(5, 0), start: "22:00", end: "06:00", want: true},
		{name: "overnight midday", t: at(12, 0), start: "22:00", end: "06:00", want: false},
		{name: "overnight at end", t: at(6, 0), start: "22:00", end: "06:00", want: true},
		{name: "single minute window", t: at(9, 30), start: "09:30", end: "09:30", want: true},
		{name: "garbage bounds collapse to midnight", t: at(0, 0), start: "x", end: "y", want: true},
		{name: "garbage bounds outside midnight", t: at(10, 0), start: "x", end: "y", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinWindow(tt.t, tt.start, tt.end); got != tt.want {
				t.Errorf("IsWithinWindow(%s, %s, %s) = %v, want %v",
					tt.t.Format("15:04"), tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestNextStart(t *testing.T) {
	got := NextStart(at(6, 30), "08:00")
	if want := at(8, 0); !got.Equal(want) {
		t.Errorf("NextStart before window = %v, want %v", got, want)
	}

	got = NextStart(at(22, 30), "08:00")
	if want := at(8, 0).AddDate(0, 0, 1); !got.Equal(want) {
		t.Errorf("NextStart after window = %v, want %v", got, want)
	}

	got = NextStart(at(8, 0), "08:00")
	if want := at(8, 0); !got.Equal(want) {
		t.Errorf("NextStart at window start = %v, want %v", got, want)
	}
}
