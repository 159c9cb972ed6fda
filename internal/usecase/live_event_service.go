package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
)

// LiveEventService answers which event a team is competing at right now.
type LiveEventService struct {
	catalog         *CatalogService
	selector        *UpstreamSelector
	resolver        *LiveEventResolver
	now             func() time.Time
	defaultOverride string
}

func NewLiveEventService(catalog *CatalogService, selector *UpstreamSelector, resolver *LiveEventResolver, defaultOverride string, now func() time.Time) *LiveEventService {
	if now == nil {
		now = time.Now
	}
	return &LiveEventService{
		catalog:         catalog,
		selector:        selector,
		resolver:        resolver,
		now:             now,
		defaultOverride: strings.TrimSpace(defaultOverride),
	}
}

// ResolveTeamLiveEvent loads the team's current-season events, keeps the ones
// running today and resolves them against their division matches. An empty
// overrideID falls back to the configured override.
func (s *LiveEventService) ResolveTeamLiveEvent(ctx context.Context, p program.Descriptor, teamID int, overrideID string) (LiveResolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventService.ResolveTeamLiveEvent", programAttributes(p)...)
	defer span.End()

	events, err := s.catalog.TeamEvents(ctx, p, teamID, 0, false)
	if err != nil {
		return LiveResolution{}, fmt.Errorf("load team events team=%d: %w", teamID, err)
	}

	adapter, err := s.selector.Select(p)
	if err != nil {
		return LiveResolution{}, err
	}

	if strings.TrimSpace(overrideID) == "" {
		overrideID = s.defaultOverride
	}

	now := s.now()
	candidates := event.LiveCandidates(events, now)
	return s.resolver.Resolve(ctx, candidates, divisionMatches(adapter, p), overrideID)
}

// divisionMatches loads the matches of every division of a candidate. A
// session only keeps the matches scheduled on its own day plus unscheduled
// ones, since upstream returns the whole league.
func divisionMatches(adapter Adapter, p program.Descriptor) MatchesFunc {
	return func(ctx context.Context, candidate event.Event) ([]match.Match, error) {
		divisions := candidate.Divisions
		if len(divisions) == 0 {
			divisions = []event.Division{{ID: 1}}
		}

		out := make([]match.Match, 0, 32)
		for _, division := range divisions {
			items, err := adapter.GetEventDivisionMatches(ctx, candidate.SourceID(), division.ID, Filter{ProgramID: p.ID})
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		}

		if !candidate.IsSession() {
			return out, nil
		}
		filtered := out[:0]
		for _, item := range out {
			if item.Scheduled == nil || item.ScheduledOn(candidate.Start) {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	}
}
