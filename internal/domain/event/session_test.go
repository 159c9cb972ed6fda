package event

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func leagueEvent() Event {
	return Event{
		ID:          51488,
		SKU:         "RE-V5RC-24-5148",
		Name:        "Northern Plains League",
		Start:       time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 12, 1, 18, 0, 0, 0, time.UTC),
		ProgramID:   1,
		ProgramCode: " v5rc ",
		Locations: map[string]Location{
			"2024-11-16": {Venue: "Central High"},
			"2024-10-05": {Venue: "North Middle"},
			"2024-10-26": {Venue: "West Academy"},
		},
	}
}

func TestExpand_LeagueEvent(t *testing.T) {
	sessions := Expand(leagueEvent())
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	wantDays := []string{"2024-10-05", "2024-10-26", "2024-11-16"}
	wantVenues := []string{"North Middle", "West Academy", "Central High"}
	seen := map[string]bool{}
	for i, s := range sessions {
		if s.Session == nil {
			t.Fatalf("session %d missing session info", i)
		}
		if s.Session.Number != i+1 || s.Session.Total != 3 {
			t.Fatalf("unexpected numbering: %+v", s.Session)
		}
		if got := s.Start.Format("2006-01-02"); got != wantDays[i] {
			t.Fatalf("session %d day=%s want=%s", i+1, got, wantDays[i])
		}
		if s.Start.Hour() != 9 || s.End.Hour() != 17 {
			t.Fatalf("unexpected session hours: %s - %s", s.Start, s.End)
		}
		if s.Location.Venue != wantVenues[i] {
			t.Fatalf("session %d venue=%q want=%q", i+1, s.Location.Venue, wantVenues[i])
		}
		if s.Session.OriginalEventID != 51488 || s.Session.OriginalSKU != "RE-V5RC-24-5148" {
			t.Fatalf("unexpected original reference: %+v", s.Session)
		}
		if s.ProgramCode != "V5RC" {
			t.Fatalf("expected normalized program code, got %q", s.ProgramCode)
		}
		if seen[s.UIID()] {
			t.Fatalf("duplicate ui id %s", s.UIID())
		}
		seen[s.UIID()] = true
	}
	if sessions[0].Name != "Northern Plains League - Session 1" {
		t.Fatalf("unexpected session name: %q", sessions[0].Name)
	}
	if sessions[2].UIID() != "51488-session-3" {
		t.Fatalf("unexpected ui id: %q", sessions[2].UIID())
	}
}

func TestExpand_SessionHoursAcrossDSTChanges(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	e := Event{
		ID:    7001,
		Name:  "East Coast League",
		Start: time.Date(2025, 3, 1, 8, 0, 0, 0, newYork),
		End:   time.Date(2025, 11, 30, 18, 0, 0, 0, newYork),
		Locations: map[string]Location{
			"2025-03-09": {Venue: "Spring Forward Gym"},
			"2025-11-02": {Venue: "Fall Back Gym"},
		},
	}

	sessions := Expand(e)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Start.Location() != newYork {
			t.Fatalf("session %s not in event time zone: %s", s.UIID(), s.Start.Location())
		}
		if s.Start.Hour() != 9 || s.Start.Minute() != 0 || s.End.Hour() != 17 || s.End.Minute() != 0 {
			t.Fatalf("session %s hours=%s - %s, want 09:00-17:00 local", s.UIID(), s.Start.Format(time.Kitchen), s.End.Format(time.Kitchen))
		}
	}
	if got := sessions[0].End.Sub(sessions[0].Start); got != 8*time.Hour {
		t.Fatalf("spring session length=%s want=8h", got)
	}
}

func TestExpand_SingleLocationIsPlainEvent(t *testing.T) {
	e := leagueEvent()
	e.Locations = map[string]Location{"2024-10-05": {Venue: "North Middle"}}

	got := Expand(e)
	if len(got) != 1 {
		t.Fatalf("expected one event, got %d", len(got))
	}
	if got[0].IsSession() {
		t.Fatalf("single-date event must not become a session")
	}
	if got[0].ID != e.ID || got[0].Name != e.Name || got[0].ProgramCode != "V5RC" {
		t.Fatalf("unexpected event: %+v", got[0])
	}
}

func TestExpand_IsDeterministic(t *testing.T) {
	first := Expand(leagueEvent())
	for i := 0; i < 10; i++ {
		again := Expand(leagueEvent())
		for j := range first {
			if first[j].UIID() != again[j].UIID() || !first[j].Start.Equal(again[j].Start) {
				t.Fatalf("expansion is not stable at index %d", j)
			}
		}
	}
}

func TestCollapse_ReturnsParentEvent(t *testing.T) {
	for _, s := range Expand(leagueEvent()) {
		got := Collapse(s)
		if got.ID != 51488 || got.SKU != "RE-V5RC-24-5148" {
			t.Fatalf("unexpected collapsed identity: id=%d sku=%s", got.ID, got.SKU)
		}
		if got.Name != "Northern Plains League" {
			t.Fatalf("unexpected collapsed name: %q", got.Name)
		}
		if got.IsSession() {
			t.Fatalf("collapsed event must not carry session info")
		}
	}
}

func TestStripSessionSuffix(t *testing.T) {
	cases := map[string]string{
		"League - Session 12":         "League",
		"League":                      "League",
		"Session 3 Invitational":      "Session 3 Invitational",
		"League - Session 2 - Finals": "League - Session 2 - Finals",
	}
	for in, want := range cases {
		if got := StripSessionSuffix(in); got != want {
			t.Fatalf("StripSessionSuffix(%q)=%q want=%q", in, got, want)
		}
	}
}
