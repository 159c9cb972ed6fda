package robotevents

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

func newTestClient(t *testing.T, handler http.HandlerFunc, keys []string, sink rawdata.Sink) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL + "/api/v2",
		SkillsBaseURL:  server.URL + "/api",
		APIKeys:        keys,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
		Sink:           sink,
		Now:            func() time.Time { return time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestClient_GetSeasonsFollowsPagination(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("authorization") != "Bearer key-a" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("authorization"))
		}
		if r.URL.Path != "/api/v2/seasons" || r.URL.Query().Get("program[]") != "1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{"meta":{"current_page":1,"last_page":2},"data":[{"id":190,"name":"V5RC 2024-2025","program":{"id":1,"code":"V5RC"},"start":"2024-04-27T00:00:00-04:00","end":"2025-04-26T00:00:00-04:00"}]}`))
		default:
			_, _ = w.Write([]byte(`{"meta":{"current_page":2,"last_page":2},"data":[{"id":197,"name":"V5RC 2025-2026","program":{"id":1,"code":"V5RC"},"start":"2025-04-26T00:00:00-04:00","end":"2026-04-25T00:00:00-04:00"}]}`))
		}
	}, []string{"key-a"}, sink)

	got, err := client.GetSeasons(context.Background(), usecase.Filter{ProgramID: 1})
	if err != nil {
		t.Fatalf("get seasons: %v", err)
	}
	if len(got) != 2 || got[0].ID != 190 || got[1].ID != 197 {
		t.Fatalf("unexpected seasons: %+v", got)
	}
	if got[1].Start.IsZero() {
		t.Fatalf("expected parsed season start")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.items) != 2 {
		t.Fatalf("expected one archived payload per page, got %d", len(sink.items))
	}
	if sink.items[0].Source != AdapterName || sink.items[0].ProgramID != 1 {
		t.Fatalf("unexpected archived payload: %+v", sink.items[0])
	}
	if strings.Contains(sink.items[0].EntityKey, "key-a") {
		t.Fatalf("archived entity key must not carry the api key: %s", sink.items[0].EntityKey)
	}
}

func TestClient_GetCurrentSeasonIDPicksCoveringSeason(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("active") != "true" {
			t.Errorf("expected active filter, got %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"meta":{"last_page":1},"data":[
			{"id":190,"program":{"id":1},"start":"2024-04-27T00:00:00Z","end":"2025-04-26T00:00:00Z"},
			{"id":197,"program":{"id":1},"start":"2025-04-26T00:00:00Z","end":"2026-04-25T00:00:00Z"}
		]}`))
	}, []string{"key-a"}, nil)

	got, err := client.GetCurrentSeasonID(context.Background(), program.Descriptor{ID: 1, Family: program.FamilyA})
	if err != nil {
		t.Fatalf("current season: %v", err)
	}
	if got != 197 {
		t.Fatalf("expected season 197, got %d", got)
	}
}

func TestClient_RotatesRejectedKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("authorization") == "Bearer key-a" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":55,"sku":"RE-V5RC-25-0055","name":"Signature Event","program":{"id":1,"code":"v5rc"},"divisions":[{"id":1,"name":"Technology","order":1}]}`))
	}, []string{"key-a", "key-b"}, nil)

	got, exists, err := client.GetEventByID(context.Background(), 55)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if !exists || got.SKU != "RE-V5RC-25-0055" || got.ProgramCode != "V5RC" {
		t.Fatalf("unexpected event: exists=%v event=%+v", exists, got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one rejected and one accepted call, got %d", calls.Load())
	}
	if client.IsInFailureState() {
		t.Fatalf("client must not be in failure state after rotating to a good key")
	}
}

func TestClient_AllKeysRejectedEntersFailureState(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, []string{"key-a", "key-b"}, nil)

	_, err := client.GetTeamEvents(context.Background(), 42, usecase.Filter{SeasonID: 197})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !client.IsInFailureState() {
		t.Fatalf("expected failure state")
	}

	first := client.GetFailureInfo()
	if !first.InFailure || !first.ShouldShowNotification || first.Message == "" {
		t.Fatalf("unexpected first failure info: %+v", first)
	}
	second := client.GetFailureInfo()
	if !second.InFailure || second.ShouldShowNotification {
		t.Fatalf("notification must be shown once, got %+v", second)
	}
}

func TestClient_NoKeysConfiguredIsFailure(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if !client.IsInFailureState() {
		t.Fatalf("client without keys must report failure")
	}
}

func TestClient_GetEventByIDNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, []string{"key-a"}, nil)

	_, exists, err := client.GetEventByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("not found must not be an error: %v", err)
	}
	if exists {
		t.Fatalf("expected missing event")
	}
}

func TestClient_ServerErrorIsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"meta":{"last_page":1},"data":[{"id":1,"matchnum":3,"name":"Qualifier #3","round":2,"started":"2025-11-01T10:00:00Z","scheduled":"2025-11-01T09:55:00Z","division":{"id":1},"alliances":[{"color":"Red","score":42,"teams":[{"team":{"id":7,"name":"229V"}}]},{"color":"blue","score":30,"teams":[]}]}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:   server.Client(),
		BaseURL:      server.URL,
		APIKeys:      []string{"key-a"},
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})

	got, err := client.GetEventDivisionMatches(context.Background(), 55, 1, usecase.Filter{})
	if err != nil {
		t.Fatalf("get matches: %v", err)
	}
	if len(got) != 1 || !got[0].Started || got[0].Ordinal() != 3 {
		t.Fatalf("unexpected matches: %+v", got)
	}
	if got[0].Alliances[0].Color != "red" || got[0].Alliances[0].Teams[0].Number != "229V" {
		t.Fatalf("unexpected alliance mapping: %+v", got[0].Alliances[0])
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}

func TestClient_GetWorldSkillsRankings(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/seasons/197/skills" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("grade_level") != "High School" {
			t.Errorf("unexpected grade %q", r.URL.Query().Get("grade_level"))
		}
		_, _ = w.Write([]byte(`[{"rank":1,"team":{"id":7,"team":"229V","teamName":"Ace","organization":"Ace Robotics","region":"Ontario","country":"Canada","gradeLevel":"High School"},"scores":{"score":310,"programming":140,"driver":170,"progStopTime":2,"driverStopTime":0}}]`))
	}, []string{"key-a"}, nil)

	got, err := client.GetWorldSkillsRankings(context.Background(), 197, program.GradeHigh)
	if err != nil {
		t.Fatalf("world skills: %v", err)
	}
	if len(got) != 1 || got[0].Score != 310 || got[0].Team.Number != "229V" || got[0].Grade != program.GradeHigh {
		t.Fatalf("unexpected skills: %+v", got)
	}
}

func TestClient_SetCurrentProgramFillsDefaultFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("program[]") != "41" {
			t.Errorf("expected default program 41, got %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"meta":{"last_page":1},"data":[]}`))
	}, []string{"key-a"}, nil)

	client.SetCurrentProgram(program.Descriptor{ID: 41, Code: "VIQRC", Family: program.FamilyA})
	if _, err := client.GetSeasons(context.Background(), usecase.Filter{}); err != nil {
		t.Fatalf("get seasons: %v", err)
	}
}

func TestKeyPool_RejectAndAccept(t *testing.T) {
	t.Parallel()

	pool := newKeyPool([]string{" a ", "b", "a", ""})
	if pool.Len() != 2 {
		t.Fatalf("expected deduplicated pool of 2, got %d", pool.Len())
	}
	idx, key := pool.Current()
	if idx != 0 || key != "a" {
		t.Fatalf("unexpected current key: %d %q", idx, key)
	}
	if exhausted := pool.Reject(0); exhausted {
		t.Fatalf("pool must not be exhausted after one rejection")
	}
	if _, key := pool.Current(); key != "b" {
		t.Fatalf("expected rotation to b, got %q", key)
	}
	if exhausted := pool.Reject(1); !exhausted {
		t.Fatalf("pool must be exhausted after rejecting every key")
	}
	pool.ResetRejections()
	if pool.Exhausted() {
		t.Fatalf("reset pool must not be exhausted")
	}
}
