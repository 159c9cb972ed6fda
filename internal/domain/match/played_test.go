package match

import (
	"testing"
	"time"
)

func scored(name string, division int, started bool, red, blue *int) Match {
	return Match{
		Name:       name,
		DivisionID: division,
		Started:    started,
		Alliances: []Alliance{
			{Color: "red", Score: red},
			{Color: "blue", Score: blue},
		},
	}
}

func TestMatch_Ordinal(t *testing.T) {
	cases := []struct {
		m    Match
		want int
	}{
		{m: Match{Name: "Qualifier #12"}, want: 12},
		{m: Match{Name: "Q7"}, want: 7},
		{m: Match{Name: "SF 2-1"}, want: 2},
		{m: Match{Name: "Final", Number: 3}, want: 3},
	}
	for _, tc := range cases {
		if got := tc.m.Ordinal(); got != tc.want {
			t.Fatalf("Ordinal(%q)=%d want=%d", tc.m.Name, got, tc.want)
		}
	}
}

func TestMatch_ReportsPlayed(t *testing.T) {
	tests := []struct {
		name string
		m    Match
		want bool
	}{
		{name: "not started zero scores", m: scored("Q1", 1, false, IntPtr(0), IntPtr(0)), want: false},
		{name: "not started with scores", m: scored("Q1", 1, false, IntPtr(40), IntPtr(12)), want: false},
		{name: "started zero scores", m: scored("Q1", 1, true, IntPtr(0), IntPtr(0)), want: false},
		{name: "started null scores", m: scored("Q1", 1, true, nil, nil), want: false},
		{name: "started positive score", m: scored("Q1", 1, true, IntPtr(0), IntPtr(14)), want: true},
		{name: "started negative score", m: scored("Q1", 1, true, IntPtr(-3), IntPtr(0)), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ReportsPlayed(); got != tt.want {
				t.Fatalf("ReportsPlayed=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestClassifyPlayed_LaterScoredMatchMarksEarlierPlayed(t *testing.T) {
	unplayed := scored("Qualifier #3", 1, false, IntPtr(0), IntPtr(0))

	got := ClassifyPlayed([]Match{unplayed})
	if got[0] {
		t.Fatalf("match with zero scores and not started must be unplayed")
	}

	matches := []Match{
		unplayed,
		scored("Qualifier #4", 1, true, IntPtr(21), IntPtr(18)),
	}
	got = ClassifyPlayed(matches)
	if !got[0] || !got[1] {
		t.Fatalf("expected both matches played, got %v", got)
	}
}

func TestClassifyPlayed_OtherDivisionDoesNotCount(t *testing.T) {
	matches := []Match{
		scored("Qualifier #3", 1, false, IntPtr(0), IntPtr(0)),
		scored("Qualifier #9", 2, true, IntPtr(21), IntPtr(18)),
	}
	got := ClassifyPlayed(matches)
	if got[0] {
		t.Fatalf("scored match in another division must not mark match played")
	}
}

func TestClassifyPlayed_EarlierScoredMatchDoesNotCount(t *testing.T) {
	matches := []Match{
		scored("Qualifier #2", 1, true, IntPtr(30), IntPtr(10)),
		scored("Qualifier #3", 1, false, nil, nil),
	}
	got := ClassifyPlayed(matches)
	if !got[0] || got[1] {
		t.Fatalf("unexpected classification: %v", got)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 10, 26, 13, 0, 0, 0, time.UTC)
	today := time.Date(2024, 10, 26, 15, 0, 0, 0, time.UTC)
	tomorrow := today.Add(24 * time.Hour)

	matches := []Match{
		scored("Q1", 1, true, IntPtr(10), IntPtr(4)),
		scored("Q2", 1, false, nil, nil),
		scored("Q3", 1, false, nil, nil),
		scored("Q4", 1, false, nil, nil),
	}
	matches[1].Scheduled = &today
	matches[2].Scheduled = &tomorrow

	got := Summarize(matches, now)
	if got.Total != 4 || got.Played != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.ActiveToday != 2 {
		t.Fatalf("expected today's match and the unscheduled match to be active, got %+v", got)
	}
	if got.Complete() {
		t.Fatalf("summary must not be complete")
	}
	if (Summary{}).Complete() {
		t.Fatalf("empty summary is never complete")
	}
}
