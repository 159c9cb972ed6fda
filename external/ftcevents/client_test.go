package ftcevents

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/platform/resilience"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

type captureSink struct {
	mu    sync.Mutex
	items []rawdata.Payload
}

func (s *captureSink) Archive(_ context.Context, items ...rawdata.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

var ftcProgram = program.Descriptor{ID: 1000, Code: "FTC", Family: program.FamilyB}

func newTestClient(t *testing.T, handler http.HandlerFunc, sink rawdata.Sink) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL + "/v2.0",
		Username:       "scout",
		Token:          "secret",
		Timeout:        2 * time.Second,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
		Sink:           sink,
	})
	client.SetCurrentProgram(ftcProgram)
	return client
}

const teamEventsBody = `{"events":[
	{"code":"USCAFFL1","name":"SoCal League Meet 1","typeName":"League Meet","venue":"Hall","city":"Irvine","stateprov":"CA","country":"USA","dateStart":"2025-11-01T00:00:00","dateEnd":"2025-11-01T23:59:59"},
	{"code":"USCACMP","name":"SoCal Championship","typeName":"Championship","city":"Pomona","stateprov":"CA","country":"USA","dateStart":"2026-02-20T00:00:00","dateEnd":"2026-02-21T00:00:00"}
],"eventCount":2}`

func TestClient_GetSeasonsFromIndex(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2.0" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"name":"FTC Events API","currentSeason":2025,"maxSeason":2025}`))
	}, nil)

	got, err := client.GetSeasons(context.Background(), usecase.Filter{})
	if err != nil {
		t.Fatalf("get seasons: %v", err)
	}
	if len(got) != 2025-firstSeason+1 {
		t.Fatalf("unexpected season count %d", len(got))
	}
	if got[0].ID != 2025 || got[0].Name != "2025-2026" || got[0].ProgramID != ftcProgram.ID {
		t.Fatalf("unexpected newest season: %+v", got[0])
	}
	if !got[0].Covers(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("season 2025 must cover December 2025")
	}
}

func TestClient_SendsBasicAuthAndCachesCurrentSeason(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "scout" || pass != "secret" {
			t.Errorf("unexpected basic auth %q %q %v", user, pass, ok)
		}
		_, _ = w.Write([]byte(`{"currentSeason":2025,"maxSeason":2026}`))
	}, nil)

	for range 2 {
		got, err := client.GetCurrentSeasonID(context.Background(), ftcProgram)
		if err != nil {
			t.Fatalf("current season: %v", err)
		}
		if got != 2025 {
			t.Fatalf("expected 2025, got %d", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected current season to be fetched once, got %d", calls.Load())
	}
}

func TestClient_TeamEventsRegisterIDsForLaterLookups(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2.0/2025/events" && r.URL.Query().Get("teamNumber") == "16072":
			_, _ = w.Write([]byte(teamEventsBody))
		case r.URL.Path == "/v2.0/2025/events" && r.URL.Query().Get("eventCode") == "USCACMP":
			_, _ = w.Write([]byte(`{"events":[{"code":"USCACMP","name":"SoCal Championship","dateStart":"2026-02-20T00:00:00","dateEnd":"2026-02-21T00:00:00"}]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
			w.WriteHeader(http.StatusBadRequest)
		}
	}, sink)

	events, err := client.GetTeamEvents(context.Background(), 16072, usecase.Filter{SeasonID: 2025})
	if err != nil {
		t.Fatalf("team events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.SKU != "USCAFFL1" || first.ProgramCode != "FTC" || first.SeasonID != 2025 || first.Location.Region != "CA" {
		t.Fatalf("unexpected event mapping: %+v", first)
	}
	if first.Start.Location() != time.UTC || first.Start.Day() != 1 {
		t.Fatalf("expected UTC start, got %v", first.Start)
	}
	if first.ID == events[1].ID || first.ID <= 0 {
		t.Fatalf("expected distinct positive ids, got %d and %d", first.ID, events[1].ID)
	}

	got, exists, err := client.GetEventByID(context.Background(), events[1].ID)
	if err != nil || !exists {
		t.Fatalf("lookup registered event: exists=%v err=%v", exists, err)
	}
	if got.ID != events[1].ID || got.Name != "SoCal Championship" {
		t.Fatalf("unexpected event: %+v", got)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.items) != 2 || sink.items[0].Source != AdapterName || sink.items[0].ProgramID != ftcProgram.ID {
		t.Fatalf("unexpected archived payloads: %+v", sink.items)
	}
}

func TestClient_GetEventByIDUnknownIsMissing(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.String())
	}, nil)

	_, exists, err := client.GetEventByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unknown id must not be an error: %v", err)
	}
	if exists {
		t.Fatalf("expected missing event")
	}
}

func TestClient_DivisionMatchesMergeQualAndPlayoff(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2.0/2025/events":
			_, _ = w.Write([]byte(teamEventsBody))
		case "/v2.0/2025/schedule/USCAFFL1/qual/hybrid":
			_, _ = w.Write([]byte(`{"schedule":[
				{"description":"Qualification 1","tournamentLevel":"QUALIFICATION","series":0,"matchNumber":1,"startTime":"2025-11-01T09:00:00","actualStartTime":"2025-11-01T09:02:11.45","postResultTime":"2025-11-01T09:06:00","scoreRedFinal":88,"scoreBlueFinal":61,
				 "teams":[{"teamNumber":16072,"station":"Red1"},{"teamNumber":7196,"station":"Red2"},{"teamNumber":11115,"station":"Blue1"},{"teamNumber":8569,"station":"Blue2"}]},
				{"description":"Qualification 2","tournamentLevel":"QUALIFICATION","series":0,"matchNumber":2,"startTime":"2025-11-01T09:07:00","actualStartTime":null,"scoreRedFinal":null,"scoreBlueFinal":null,"teams":[]}
			]}`))
		case "/v2.0/2025/schedule/USCAFFL1/playoff/hybrid":
			_, _ = w.Write([]byte(`{"schedule":[{"description":"Final 1","tournamentLevel":"PLAYOFF","series":0,"matchNumber":1,"startTime":"2025-11-01T15:00:00","teams":[]}]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
		}
	}, nil)

	events, err := client.GetTeamEvents(context.Background(), 16072, usecase.Filter{SeasonID: 2025})
	if err != nil {
		t.Fatalf("team events: %v", err)
	}

	got, err := client.GetEventDivisionMatches(context.Background(), events[0].ID, 1, usecase.Filter{})
	if err != nil {
		t.Fatalf("division matches: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	first := got[0]
	if !first.Started || !first.ReportsPlayed() || first.Round != match.RoundQualification || first.Ordinal() != 1 {
		t.Fatalf("unexpected first match: %+v", first)
	}
	if len(first.Alliances[0].Teams) != 2 || first.Alliances[0].Teams[0].Number != "16072" || *first.Alliances[0].Score != 88 {
		t.Fatalf("unexpected red alliance: %+v", first.Alliances[0])
	}
	if got[1].Started || got[1].Scheduled == nil {
		t.Fatalf("second match must be scheduled and not started: %+v", got[1])
	}
	if got[2].Round != match.RoundFinal || got[2].ID == got[0].ID {
		t.Fatalf("unexpected playoff match: %+v", got[2])
	}

	if _, err := client.GetEventDivisionMatches(context.Background(), 99, 1, usecase.Filter{}); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unregistered event, got %v", err)
	}
}

func TestClient_TeamAwardsAcrossEvents(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2.0/2025/events":
			_, _ = w.Write([]byte(teamEventsBody))
		case strings.HasPrefix(r.URL.Path, "/v2.0/2025/awards/"):
			if r.URL.Query().Get("teamNumber") != "16072" {
				t.Errorf("expected team filter, got %s", r.URL.RawQuery)
			}
			if strings.HasSuffix(r.URL.Path, "USCACMP") {
				_, _ = w.Write([]byte(`{"awards":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"awards":[
				{"awardId":5,"name":"Inspire Award","series":1,"teamNumber":16072},
				{"awardId":5,"name":"Inspire Award","series":1,"teamNumber":null,"person":"Jane Mentor"}
			]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
		}
	}, nil)

	got, err := client.GetTeamAwards(context.Background(), 16072, usecase.Filter{SeasonID: 2025})
	if err != nil {
		t.Fatalf("team awards: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected winner rows folded into one award, got %+v", got)
	}
	if got[0].Title != "Inspire Award" || len(got[0].Teams) != 1 || len(got[0].Individuals) != 1 {
		t.Fatalf("unexpected award: %+v", got[0])
	}
}

func TestClient_RejectedCredentialsEnterFailureState(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, nil)

	_, err := client.GetCurrentSeasonID(context.Background(), ftcProgram)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	first := client.GetFailureInfo()
	if !first.InFailure || !first.ShouldShowNotification {
		t.Fatalf("unexpected failure info: %+v", first)
	}
	if second := client.GetFailureInfo(); second.ShouldShowNotification {
		t.Fatalf("notification must be shown once, got %+v", second)
	}
}

func TestClient_MissingCredentialsIsFailure(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Username: "scout"})
	if !client.IsInFailureState() {
		t.Fatalf("client without token must report failure")
	}
	if _, err := client.GetSeasons(context.Background(), usecase.Filter{}); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClient_WorldSkillsUnsupported(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Username: "scout", Token: "secret"})
	if _, err := client.GetWorldSkillsRankings(context.Background(), 2025, ""); !errors.Is(err, usecase.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestClient_ServerErrorIsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"currentSeason":2025,"maxSeason":2025}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:      server.URL,
		Username:     "scout",
		Token:        "secret",
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})
	if _, err := client.GetCurrentSeasonID(context.Background(), ftcProgram); err != nil {
		t.Fatalf("current season: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}

func TestClient_GetEventByIDOnFreshClient(t *testing.T) {
	t.Parallel()

	issued := eventID(2025, "USCACMP")
	var listings atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2.0/2025/events" && r.URL.RawQuery == "":
			listings.Add(1)
			_, _ = w.Write([]byte(teamEventsBody))
		case r.URL.Path == "/v2.0/2025/events" && r.URL.Query().Get("eventCode") == "USCACMP":
			_, _ = w.Write([]byte(`{"events":[{"code":"USCACMP","name":"SoCal Championship","dateStart":"2026-02-20T00:00:00","dateEnd":"2026-02-21T00:00:00"}]}`))
		case r.URL.Path == "/v2.0/2025/rankings/USCACMP":
			_, _ = w.Write([]byte(`{"rankings":[]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
			w.WriteHeader(http.StatusBadRequest)
		}
	}, nil)

	got, exists, err := client.GetEventByID(context.Background(), issued)
	if err != nil || !exists {
		t.Fatalf("lookup event on fresh client: exists=%v err=%v", exists, err)
	}
	if got.ID != issued || got.SKU != "USCACMP" || got.SeasonID != 2025 {
		t.Fatalf("unexpected event: %+v", got)
	}
	if _, err := client.GetEventDivisionRankings(context.Background(), issued, 1, usecase.Filter{}); err != nil {
		t.Fatalf("rankings for resolved event: %v", err)
	}

	_, exists, err = client.GetEventByID(context.Background(), eventID(2025, "USNOSUCH"))
	if err != nil || exists {
		t.Fatalf("expected unknown code to be missing: exists=%v err=%v", exists, err)
	}
	if listings.Load() != 1 {
		t.Fatalf("expected season to be listed once, got %d", listings.Load())
	}
}

func TestEventID_Stable(t *testing.T) {
	t.Parallel()

	id := eventID(2025, "USCACMP")
	if id != eventID(2025, "USCACMP") {
		t.Fatalf("event id must be deterministic")
	}
	if id == eventID(2024, "USCACMP") {
		t.Fatalf("event id must depend on season")
	}
	if seasonOfEventID(id) != 2025 {
		t.Fatalf("season not recoverable from id %d", id)
	}
	if int64(eventID(9006, "ZZZZZZZZ")) >= 1<<53 {
		t.Fatalf("event id exceeds JSON-safe integer range")
	}
}
