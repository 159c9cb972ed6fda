package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

type LiveOutcome string

const (
	LiveOutcomeSelected    LiveOutcome = "selected"
	LiveOutcomeNoLiveEvent LiveOutcome = "no_live_event"
	LiveOutcomeFallback    LiveOutcome = "fallback"
)

// MatchesFunc loads the matches of one candidate event.
type MatchesFunc func(ctx context.Context, candidate event.Event) ([]match.Match, error)

// LiveResolution is the answer to "where is the team competing right now".
// Event is zero when Outcome is LiveOutcomeNoLiveEvent.
type LiveResolution struct {
	Outcome    LiveOutcome       `json:"outcome"`
	Event      event.Event       `json:"event"`
	Reason     string            `json:"reason"`
	Candidates []CandidateReport `json:"candidates"`
}

type CandidateReport struct {
	UIID        string `json:"ui_id"`
	EventID     int    `json:"event_id"`
	Matches     int    `json:"matches"`
	Played      int    `json:"played"`
	ActiveToday int    `json:"active_today"`
	NoData      bool   `json:"no_data"`
	Complete    bool   `json:"complete"`
	FetchError  string `json:"fetch_error,omitempty"`
}

type LiveOutcomeRecorder interface {
	RecordLiveResolution(outcome string)
}

type LiveEventResolverConfig struct {
	MaxWorkers int
	Now        func() time.Time
	Logger     *logging.Logger
	Recorder   LiveOutcomeRecorder
}

// LiveEventResolver picks, among temporally plausible candidates, the event a
// team is competing at right now.
type LiveEventResolver struct {
	maxWorkers int
	now        func() time.Time
	logger     *logging.Logger
	recorder   LiveOutcomeRecorder
}

func NewLiveEventResolver(cfg LiveEventResolverConfig) *LiveEventResolver {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &LiveEventResolver{
		maxWorkers: cfg.MaxWorkers,
		now:        cfg.Now,
		logger:     cfg.Logger.Named("live_event_resolver"),
		recorder:   cfg.Recorder,
	}
}

type candidateAnalysis struct {
	candidate event.Event
	summary   match.Summary
	noData    bool
	err       error
}

// Resolve runs the override check, per-candidate completion analysis,
// the all-complete short-circuit, activity scoring and the fallback ordering,
// in that order. A fetch failure only disqualifies its own candidate; an
// error is returned when every candidate failed.
func (r *LiveEventResolver) Resolve(ctx context.Context, candidates []event.Event, matchesFor MatchesFunc, overrideID string) (LiveResolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventResolver.Resolve")
	defer span.End()

	if overrideID = strings.TrimSpace(overrideID); overrideID != "" {
		for _, candidate := range candidates {
			if matchesOverride(candidate, overrideID) {
				return r.finish(ctx, LiveResolution{
					Outcome: LiveOutcomeSelected,
					Event:   candidate,
					Reason:  "override",
				}), nil
			}
		}
		r.logger.WarnContext(ctx, "live event override not among candidates", "override_id", overrideID, "candidates", len(candidates))
	}

	if len(candidates) == 0 {
		return r.finish(ctx, LiveResolution{
			Outcome:    LiveOutcomeNoLiveEvent,
			Reason:     "no candidates",
			Candidates: []CandidateReport{},
		}), nil
	}
	if matchesFor == nil {
		return LiveResolution{}, fmt.Errorf("%w: matches func is required", ErrInvalidInput)
	}

	now := r.now()
	mapper := iter.Mapper[event.Event, candidateAnalysis]{MaxGoroutines: r.maxWorkers}
	analyses := mapper.Map(candidates, func(candidate *event.Event) candidateAnalysis {
		return analyzeCandidate(ctx, *candidate, matchesFor, now)
	})

	reports := make([]CandidateReport, 0, len(analyses))
	failures := make([]error, 0)
	for _, a := range analyses {
		reports = append(reports, a.report())
		if a.err != nil {
			failures = append(failures, a.err)
			r.logger.WarnContext(ctx, "live candidate match fetch failed", "event_ui_id", a.candidate.UIID(), "error", a.err)
		}
	}
	if len(failures) == len(analyses) {
		return LiveResolution{}, fmt.Errorf("%w: %w", ErrAllCandidatesFailed, errors.Join(failures...))
	}

	// Candidates without matches carry no completion signal: they are kept
	// for scoring and fallback but never block the all-complete outcome.
	withData, incomplete := 0, 0
	remaining := make([]candidateAnalysis, 0, len(analyses))
	for _, a := range analyses {
		if !a.noData {
			withData++
			if !a.summary.Complete() {
				incomplete++
			}
		}
		if a.noData || !a.summary.Complete() {
			remaining = append(remaining, a)
		}
	}

	if withData > 0 && incomplete == 0 {
		return r.finish(ctx, LiveResolution{
			Outcome:    LiveOutcomeNoLiveEvent,
			Reason:     "all candidates complete",
			Candidates: reports,
		}), nil
	}

	best := -1
	for i, a := range remaining {
		if a.summary.ActiveToday == 0 {
			continue
		}
		if best < 0 || a.summary.ActiveToday > remaining[best].summary.ActiveToday {
			best = i
		}
	}
	if best >= 0 {
		return r.finish(ctx, LiveResolution{
			Outcome:    LiveOutcomeSelected,
			Event:      remaining[best].candidate,
			Reason:     "most active matches today",
			Candidates: reports,
		}), nil
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		left, right := remaining[i].candidate, remaining[j].candidate
		leftToday, rightToday := event.StartedOn(left, now), event.StartedOn(right, now)
		if leftToday != rightToday {
			return leftToday
		}
		return left.Start.After(right.Start)
	})
	return r.finish(ctx, LiveResolution{
		Outcome:    LiveOutcomeFallback,
		Event:      remaining[0].candidate,
		Reason:     "most recently started",
		Candidates: reports,
	}), nil
}

func (r *LiveEventResolver) finish(ctx context.Context, res LiveResolution) LiveResolution {
	if res.Candidates == nil {
		res.Candidates = []CandidateReport{}
	}
	if r.recorder != nil {
		r.recorder.RecordLiveResolution(string(res.Outcome))
	}
	r.logger.DebugContext(ctx, "live event resolved",
		"outcome", string(res.Outcome),
		"reason", res.Reason,
		"event_ui_id", res.Event.UIID(),
	)
	return res
}

func analyzeCandidate(ctx context.Context, candidate event.Event, matchesFor MatchesFunc, now time.Time) candidateAnalysis {
	out := candidateAnalysis{candidate: candidate}
	matches, err := matchesFor(ctx, candidate)
	if err != nil {
		out.err = fmt.Errorf("load matches for event %s: %w", candidate.UIID(), err)
		out.noData = true
		return out
	}
	out.summary = match.Summarize(matches, now)
	out.noData = out.summary.Total == 0
	return out
}

func (a candidateAnalysis) report() CandidateReport {
	out := CandidateReport{
		UIID:        a.candidate.UIID(),
		EventID:     a.candidate.SourceID(),
		Matches:     a.summary.Total,
		Played:      a.summary.Played,
		ActiveToday: a.summary.ActiveToday,
		NoData:      a.noData,
		Complete:    !a.noData && a.summary.Complete(),
	}
	if a.err != nil {
		out.FetchError = a.err.Error()
	}
	return out
}

func matchesOverride(candidate event.Event, overrideID string) bool {
	return candidate.UIID() == overrideID || strconv.Itoa(candidate.ID) == overrideID
}
