package event

import (
	"testing"
	"time"
)

func TestLiveCandidates(t *testing.T) {
	now := time.Date(2024, 10, 26, 13, 0, 0, 0, time.UTC)

	events := []Event{
		leagueEvent(),
		{
			ID:    1,
			Name:  "Two Day Signature",
			Start: time.Date(2024, 10, 25, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 10, 26, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:    2,
			Name:  "Last Week",
			Start: time.Date(2024, 10, 19, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 10, 19, 18, 0, 0, 0, time.UTC),
		},
		{ID: 3, Name: "No Dates"},
	}

	got := LiveCandidates(events, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].UIID() != "51488-session-2" {
		t.Fatalf("expected league session 2 first, got %s", got[0].UIID())
	}
	if got[0].SourceID() != 51488 {
		t.Fatalf("session source id must be the league id, got %d", got[0].SourceID())
	}
	if got[1].ID != 1 {
		t.Fatalf("expected two day event, got %d", got[1].ID)
	}
}

func TestStartedOn(t *testing.T) {
	e := Event{Start: time.Date(2024, 10, 26, 8, 0, 0, 0, time.UTC)}
	if !StartedOn(e, time.Date(2024, 10, 26, 22, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected event to start today")
	}
	if StartedOn(e, time.Date(2024, 10, 27, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected event not to start today")
	}
	if StartedOn(Event{}, time.Now()) {
		t.Fatalf("zero start never starts today")
	}
}
