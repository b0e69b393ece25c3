package interval

import (
	"testing"
	"time"
)

func TestGenerateDailySchedule(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		now   time.Time
		want  []time.Time
	}{
		{
			name:  "whole day ahead",
			start: "06:00",
			end:   "22:00",
			now:   at(6, 0),
			want:  []time.Time{at(7, 0), at(10, 0), at(12, 30), at(15, 0), at(18, 0), at(20, 0)},
		},
		{
			name:  "past slots dropped",
			start: "06:00",
			end:   "22:00",
			now:   at(12, 30),
			want:  []time.Time{at(15, 0), at(18, 0), at(20, 0)},
		},
		{
			name:  "window narrows slots",
			start: "09:00",
			end:   "15:00",
			now:   at(6, 0),
			want:  []time.Time{at(10, 0), at(12, 30), at(15, 0)},
		},
		{
			name:  "nothing left",
			start: "06:00",
			end:   "22:00",
			now:   at(21, 0),
			want:  nil,
		},
		{
			name:  "overnight window keeps evening slot",
			start: "19:00",
			end:   "07:00",
			now:   at(6, 0),
			want:  []time.Time{at(7, 0), at(20, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateDailySchedule(2000, tt.start, tt.end, tt.now)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d slots %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("slot[%d] = %s, want %s", i, got[i].Format("15:04"), tt.want[i].Format("15:04"))
				}
			}
		})
	}
}
