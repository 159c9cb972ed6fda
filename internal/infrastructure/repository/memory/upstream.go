package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
	"github.com/riskibarqy/robo-companion/internal/platform/resilience"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

// Registration links a team to an event it attends.
type Registration struct {
	EventID int
	TeamID  int
}

// Dataset is the fixed upstream state served by Upstream.
type Dataset struct {
	Seasons        []season.Season
	CurrentSeason  map[int]int
	Events         []event.Event
	Teams          []team.Team
	Registrations  []Registration
	Matches        []match.Match
	Rankings       []ranking.Ranking
	Awards         []award.Award
	SkillsBySeason map[int][]ranking.SkillRecord
}

// Upstream is an in-process usecase.Adapter backed by a Dataset. It serves
// local development and handler tests.
type Upstream struct {
	name    string
	family  program.Family
	failure resilience.FailureLatch

	mu      sync.RWMutex
	data    Dataset
	current program.Descriptor
}

var _ usecase.Adapter = (*Upstream)(nil)

func NewUpstream(name string, family program.Family, data Dataset) *Upstream {
	return &Upstream{name: name, family: family, data: data}
}

func (u *Upstream) Name() string {
	return u.name
}

func (u *Upstream) Family() program.Family {
	return u.family
}

func (u *Upstream) SetCurrentProgram(p program.Descriptor) {
	u.mu.Lock()
	u.current = p
	u.mu.Unlock()
}

// Fail puts the upstream into failure state until Recover is called.
func (u *Upstream) Fail(message string) {
	u.failure.Trip(message)
}

func (u *Upstream) Recover() {
	u.failure.Reset()
}

func (u *Upstream) IsInFailureState() bool {
	return u.failure.Failing()
}

func (u *Upstream) GetFailureInfo() usecase.FailureInfo {
	failing, notify, message := u.failure.Acknowledge()
	return usecase.FailureInfo{InFailure: failing, ShouldShowNotification: notify, Message: message}
}

func (u *Upstream) GetSeasons(_ context.Context, filter usecase.Filter) ([]season.Season, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	programID := u.programID(filter)
	out := make([]season.Season, 0, len(u.data.Seasons))
	for _, item := range u.data.Seasons {
		if programID == 0 || item.ProgramID == programID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (u *Upstream) GetCurrentSeasonID(_ context.Context, p program.Descriptor) (int, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if id, ok := u.data.CurrentSeason[p.ID]; ok {
		return id, nil
	}
	return 0, usecase.ErrNotFound
}

func (u *Upstream) GetEventByID(_ context.Context, eventID int) (event.Event, bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	item, ok := u.event(eventID)
	return item, ok, nil
}

func (u *Upstream) GetEventTeams(_ context.Context, eventID int, filter usecase.Filter) ([]team.Team, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, reg := range u.data.Registrations {
		if reg.EventID != eventID {
			continue
		}
		item, ok := u.team(reg.TeamID)
		if !ok || (filter.Grade != "" && item.Grade != filter.Grade) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Upstream) GetEventAwards(_ context.Context, eventID int, _ usecase.Filter) ([]award.Award, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Awards, func(item award.Award) bool { return item.EventID == eventID }), nil
}

func (u *Upstream) GetEventDivisionRankings(_ context.Context, eventID, divisionID int, _ usecase.Filter) ([]ranking.Ranking, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Rankings, func(item ranking.Ranking) bool {
		return item.EventID == eventID && item.DivisionID == divisionID
	}), nil
}

func (u *Upstream) GetEventDivisionMatches(_ context.Context, eventID, divisionID int, _ usecase.Filter) ([]match.Match, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Matches, func(item match.Match) bool {
		return item.EventID == eventID && item.DivisionID == divisionID
	}), nil
}

func (u *Upstream) GetTeamByNumber(_ context.Context, number string, programID int) (team.Team, bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	number = strings.TrimSpace(number)
	for _, item := range u.data.Teams {
		if !strings.EqualFold(item.Number, number) {
			continue
		}
		if programID > 0 && item.ProgramID != programID {
			continue
		}
		return item, true, nil
	}
	return team.Team{}, false, nil
}

func (u *Upstream) GetTeamEvents(_ context.Context, teamID int, filter usecase.Filter) ([]event.Event, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	ids := u.teamEventIDs(teamID)
	return collect(u.data.Events, func(item event.Event) bool {
		if !slices.Contains(ids, item.ID) {
			return false
		}
		if filter.SeasonID > 0 && item.SeasonID != filter.SeasonID {
			return false
		}
		if !filter.Start.IsZero() && item.End.Before(filter.Start) {
			return false
		}
		return filter.End.IsZero() || !item.Start.After(filter.End)
	}), nil
}

func (u *Upstream) GetTeamMatches(_ context.Context, teamID int, filter usecase.Filter) ([]match.Match, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Matches, func(item match.Match) bool {
		return item.HasTeam(teamID) && (filter.EventID == 0 || item.EventID == filter.EventID)
	}), nil
}

func (u *Upstream) GetTeamRankings(_ context.Context, teamID int, filter usecase.Filter) ([]ranking.Ranking, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Rankings, func(item ranking.Ranking) bool {
		return item.Team.ID == teamID && (filter.EventID == 0 || item.EventID == filter.EventID)
	}), nil
}

func (u *Upstream) GetTeamAwards(_ context.Context, teamID int, filter usecase.Filter) ([]award.Award, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return collect(u.data.Awards, func(item award.Award) bool {
		if filter.EventID > 0 && item.EventID != filter.EventID {
			return false
		}
		return slices.ContainsFunc(item.Teams, func(ref team.Ref) bool { return ref.ID == teamID })
	}), nil
}

func (u *Upstream) GetWorldSkillsRankings(_ context.Context, seasonID int, grade program.Grade) ([]ranking.SkillRecord, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.data.SkillsBySeason == nil {
		return nil, usecase.ErrUnsupported
	}
	return collect(u.data.SkillsBySeason[seasonID], func(item ranking.SkillRecord) bool {
		return grade == "" || item.Grade == grade
	}), nil
}

func (u *Upstream) programID(filter usecase.Filter) int {
	if filter.ProgramID > 0 {
		return filter.ProgramID
	}
	return u.current.ID
}

func (u *Upstream) event(eventID int) (event.Event, bool) {
	for _, item := range u.data.Events {
		if item.ID == eventID {
			return item, true
		}
	}
	return event.Event{}, false
}

func (u *Upstream) team(teamID int) (team.Team, bool) {
	for _, item := range u.data.Teams {
		if item.ID == teamID {
			return item, true
		}
	}
	return team.Team{}, false
}

func (u *Upstream) teamEventIDs(teamID int) []int {
	var out []int
	for _, reg := range u.data.Registrations {
		if reg.TeamID == teamID {
			out = append(out, reg.EventID)
		}
	}
	return out
}

func collect[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
