package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
	"github.com/riskibarqy/robo-companion/internal/platform/cache"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

const (
	cacheWorldSkills      = "world_skills"
	cacheDivisionRankings = "division_rankings"
	cacheEventAwards      = "event_awards"
	cacheTeamEvents       = "team_events"
	cacheEventTeams       = "event_teams"
)

type CatalogServiceConfig struct {
	Programs      program.Catalog
	Selector      *UpstreamSelector
	Logger        *logging.Logger
	CacheObserver cache.Observer
}

// CatalogService is the read facade consumed by screens. Hierarchical
// lookups go through one MultiKey cache per dataset; everything else is
// passed straight to the adapter selected for the program.
type CatalogService struct {
	programs program.Catalog
	selector *UpstreamSelector
	logger   *logging.Logger

	worldSkills      *cache.MultiKey[ranking.SkillRecord]
	divisionRankings *cache.MultiKey[ranking.Ranking]
	eventAwards      *cache.MultiKey[award.Award]
	teamEvents       *cache.MultiKey[event.Event]
	eventTeams       *cache.MultiKey[team.Team]
}

func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	s := &CatalogService{
		programs: cfg.Programs,
		selector: cfg.Selector,
		logger:   cfg.Logger.Named("catalog_service"),
	}

	opts := []cache.Option{cache.WithLogger(cfg.Logger), cache.WithObserver(cfg.CacheObserver)}
	s.worldSkills = cache.NewMultiKey[ranking.SkillRecord](cacheWorldSkills, s.fetchWorldSkills, opts...)
	s.divisionRankings = cache.NewMultiKey[ranking.Ranking](cacheDivisionRankings, s.fetchDivisionRankings, opts...)
	s.eventAwards = cache.NewMultiKey[award.Award](cacheEventAwards, s.fetchEventAwards, opts...)
	s.teamEvents = cache.NewMultiKey[event.Event](cacheTeamEvents, s.fetchTeamEvents, opts...)
	s.eventTeams = cache.NewMultiKey[team.Team](cacheEventTeams, s.fetchEventTeams, opts...)
	return s
}

func (s *CatalogService) Programs() []program.Descriptor {
	return s.programs.All()
}

func (s *CatalogService) Program(id int) (program.Descriptor, error) {
	p, err := s.programs.Get(id)
	if err != nil {
		return program.Descriptor{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return p, nil
}

// Seasons lists the seasons of p, newest first as returned upstream.
func (s *CatalogService) Seasons(ctx context.Context, p program.Descriptor) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Seasons", programAttributes(p)...)
	defer span.End()

	adapter, err := s.selector.Select(p)
	if err != nil {
		return nil, err
	}
	items, err := adapter.GetSeasons(ctx, Filter{ProgramID: p.ID})
	if err != nil {
		return nil, fmt.Errorf("list seasons program=%d: %w", p.ID, err)
	}
	return items, nil
}

func (s *CatalogService) CurrentSeasonID(ctx context.Context, p program.Descriptor) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.CurrentSeasonID", programAttributes(p)...)
	defer span.End()

	adapter, err := s.selector.Select(p)
	if err != nil {
		return 0, err
	}
	id, err := adapter.GetCurrentSeasonID(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("current season program=%d: %w", p.ID, err)
	}
	return id, nil
}

// EventWithSessions returns the event and its league sessions. A non-league
// event expands to itself.
func (s *CatalogService) EventWithSessions(ctx context.Context, p program.Descriptor, eventID int) (event.Event, []event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.EventWithSessions", programAttributes(p)...)
	defer span.End()

	if eventID <= 0 {
		return event.Event{}, nil, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}
	adapter, err := s.selector.Select(p)
	if err != nil {
		return event.Event{}, nil, err
	}
	item, exists, err := adapter.GetEventByID(ctx, eventID)
	if err != nil {
		return event.Event{}, nil, fmt.Errorf("get event id=%d: %w", eventID, err)
	}
	if !exists {
		return event.Event{}, nil, fmt.Errorf("%w: event id=%d", ErrNotFound, eventID)
	}
	return item, event.Expand(item), nil
}

func (s *CatalogService) DivisionMatches(ctx context.Context, p program.Descriptor, eventID, divisionID int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DivisionMatches", programAttributes(p)...)
	defer span.End()

	adapter, err := s.selector.Select(p)
	if err != nil {
		return nil, err
	}
	items, err := adapter.GetEventDivisionMatches(ctx, eventID, divisionID, Filter{ProgramID: p.ID})
	if err != nil {
		return nil, fmt.Errorf("list matches event=%d division=%d: %w", eventID, divisionID, err)
	}
	return items, nil
}

func (s *CatalogService) TeamByNumber(ctx context.Context, p program.Descriptor, number string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.TeamByNumber", programAttributes(p)...)
	defer span.End()

	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return team.Team{}, fmt.Errorf("%w: team number is required", ErrInvalidInput)
	}
	adapter, err := s.selector.Select(p)
	if err != nil {
		return team.Team{}, err
	}
	item, exists, err := adapter.GetTeamByNumber(ctx, number, p.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team number=%s: %w", number, err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team number=%s", ErrNotFound, number)
	}
	return item, nil
}

// WorldSkills returns the season-wide skills ranking for one grade.
func (s *CatalogService) WorldSkills(ctx context.Context, p program.Descriptor, seasonID int, grade program.Grade, refresh bool) ([]ranking.SkillRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.WorldSkills", programAttributes(p)...)
	defer span.End()

	if !p.SupportsSecondaryRanking {
		return nil, fmt.Errorf("%w: program %s has no skills ranking", ErrUnsupported, p.Code)
	}
	if !p.HasGrade(grade) {
		return nil, fmt.Errorf("%w: grade %q is not valid for program %s", ErrInvalidInput, grade, p.Code)
	}
	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be positive", ErrInvalidInput)
	}
	return load(ctx, s.worldSkills, cache.NewKey(seasonID, p.ID, string(grade)), refresh)
}

func (s *CatalogService) CachedWorldSkills(p program.Descriptor, seasonID int, grade program.Grade) []ranking.SkillRecord {
	return s.worldSkills.Get(cache.NewKey(seasonID, p.ID, string(grade)))
}

func (s *CatalogService) DivisionRankings(ctx context.Context, p program.Descriptor, eventID, divisionID int, refresh bool) ([]ranking.Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DivisionRankings", programAttributes(p)...)
	defer span.End()

	if eventID <= 0 || divisionID <= 0 {
		return nil, fmt.Errorf("%w: event and division ids must be positive", ErrInvalidInput)
	}
	return load(ctx, s.divisionRankings, cache.NewKey(p.ID, eventID, divisionID), refresh)
}

func (s *CatalogService) CachedDivisionRankings(p program.Descriptor, eventID, divisionID int) []ranking.Ranking {
	return s.divisionRankings.Get(cache.NewKey(p.ID, eventID, divisionID))
}

func (s *CatalogService) EventAwards(ctx context.Context, p program.Descriptor, eventID int, refresh bool) ([]award.Award, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.EventAwards", programAttributes(p)...)
	defer span.End()

	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}
	return load(ctx, s.eventAwards, cache.NewKey(p.ID, eventID), refresh)
}

func (s *CatalogService) EventTeams(ctx context.Context, p program.Descriptor, eventID int, refresh bool) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.EventTeams", programAttributes(p)...)
	defer span.End()

	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}
	return load(ctx, s.eventTeams, cache.NewKey(p.ID, eventID), refresh)
}

// TeamEvents lists the events of a team in one season. A zero seasonID
// resolves to the program's current season.
func (s *CatalogService) TeamEvents(ctx context.Context, p program.Descriptor, teamID, seasonID int, refresh bool) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.TeamEvents", programAttributes(p)...)
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	if seasonID == 0 {
		current, err := s.CurrentSeasonID(ctx, p)
		if err != nil {
			return nil, err
		}
		seasonID = current
	}
	return load(ctx, s.teamEvents, cache.NewKey(p.ID, teamID, seasonID), refresh)
}

// Clear empties every cache, for logout or reset.
func (s *CatalogService) Clear() {
	s.worldSkills.Clear()
	s.divisionRankings.Clear()
	s.eventAwards.Clear()
	s.teamEvents.Clear()
	s.eventTeams.Clear()
}

// CacheEntries reports the non-empty entries of every cache by cache name.
func (s *CatalogService) CacheEntries() map[string][]cache.EntryInfo {
	return map[string][]cache.EntryInfo{
		cacheWorldSkills:      s.worldSkills.Entries(),
		cacheDivisionRankings: s.divisionRankings.Entries(),
		cacheEventAwards:      s.eventAwards.Entries(),
		cacheTeamEvents:       s.teamEvents.Entries(),
		cacheEventTeams:       s.eventTeams.Entries(),
	}
}

func load[T any](ctx context.Context, c *cache.MultiKey[T], key cache.Key, refresh bool) ([]T, error) {
	if refresh {
		return c.ForceRefresh(ctx, key)
	}
	return c.Preload(ctx, key)
}

func (s *CatalogService) fetchWorldSkills(ctx context.Context, key cache.Key) ([]ranking.SkillRecord, error) {
	dims := key.Dimensions()
	seasonID, err := intDimension(dims, 0)
	if err != nil {
		return nil, err
	}
	adapter, _, err := s.adapterForDimension(dims, 1)
	if err != nil {
		return nil, err
	}
	return adapter.GetWorldSkillsRankings(ctx, seasonID, program.Grade(dims[2]))
}

func (s *CatalogService) fetchDivisionRankings(ctx context.Context, key cache.Key) ([]ranking.Ranking, error) {
	dims := key.Dimensions()
	adapter, p, err := s.adapterForDimension(dims, 0)
	if err != nil {
		return nil, err
	}
	eventID, err := intDimension(dims, 1)
	if err != nil {
		return nil, err
	}
	divisionID, err := intDimension(dims, 2)
	if err != nil {
		return nil, err
	}
	return adapter.GetEventDivisionRankings(ctx, eventID, divisionID, Filter{ProgramID: p.ID})
}

func (s *CatalogService) fetchEventAwards(ctx context.Context, key cache.Key) ([]award.Award, error) {
	dims := key.Dimensions()
	adapter, p, err := s.adapterForDimension(dims, 0)
	if err != nil {
		return nil, err
	}
	eventID, err := intDimension(dims, 1)
	if err != nil {
		return nil, err
	}
	return adapter.GetEventAwards(ctx, eventID, Filter{ProgramID: p.ID})
}

func (s *CatalogService) fetchEventTeams(ctx context.Context, key cache.Key) ([]team.Team, error) {
	dims := key.Dimensions()
	adapter, p, err := s.adapterForDimension(dims, 0)
	if err != nil {
		return nil, err
	}
	eventID, err := intDimension(dims, 1)
	if err != nil {
		return nil, err
	}
	return adapter.GetEventTeams(ctx, eventID, Filter{ProgramID: p.ID})
}

func (s *CatalogService) fetchTeamEvents(ctx context.Context, key cache.Key) ([]event.Event, error) {
	dims := key.Dimensions()
	adapter, p, err := s.adapterForDimension(dims, 0)
	if err != nil {
		return nil, err
	}
	teamID, err := intDimension(dims, 1)
	if err != nil {
		return nil, err
	}
	seasonID, err := intDimension(dims, 2)
	if err != nil {
		return nil, err
	}
	return adapter.GetTeamEvents(ctx, teamID, Filter{ProgramID: p.ID, SeasonID: seasonID})
}

func (s *CatalogService) adapterForDimension(dims []string, i int) (Adapter, program.Descriptor, error) {
	programID, err := intDimension(dims, i)
	if err != nil {
		return nil, program.Descriptor{}, err
	}
	p, err := s.Program(programID)
	if err != nil {
		return nil, program.Descriptor{}, err
	}
	adapter, err := s.selector.Select(p)
	if err != nil {
		return nil, program.Descriptor{}, err
	}
	return adapter, p, nil
}

func intDimension(dims []string, i int) (int, error) {
	if i >= len(dims) {
		return 0, fmt.Errorf("%w: cache key has %d dimensions, want index %d", ErrInvalidInput, len(dims), i)
	}
	value, err := strconv.Atoi(dims[i])
	if err != nil {
		return 0, fmt.Errorf("%w: cache key dimension %d: %v", ErrInvalidInput, i, err)
	}
	return value, nil
}
