package season

import (
	"testing"
	"time"
)

func TestCurrent(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	past := Season{ID: 181, Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)}
	recent := Season{ID: 190, Start: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)}
	active := Season{ID: 197, Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC)}
	future := Season{ID: 205, Start: time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2028, 4, 30, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name    string
		seasons []Season
		wantID  int
		wantOK  bool
	}{
		{name: "covering season wins", seasons: []Season{past, active, future}, wantID: 197, wantOK: true},
		{name: "most recent started when none covers", seasons: []Season{past, recent, future}, wantID: 190, wantOK: true},
		{name: "highest id when all in future", seasons: []Season{future, {ID: 210, Start: future.Start.AddDate(1, 0, 0)}}, wantID: 210, wantOK: true},
		{name: "empty", seasons: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Current(tt.seasons, now)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v want=%v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Fatalf("season=%d want=%d", got.ID, tt.wantID)
			}
		})
	}
}
