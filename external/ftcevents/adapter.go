package ftcevents

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
	"github.com/riskibarqy/robo-companion/internal/usecase"
	"github.com/sourcegraph/conc/iter"
)

const (
	maxTeamPages    = 40
	teamFanoutLimit = 4
)

var scheduleLevels = []string{"qual", "playoff"}

func (c *Client) GetSeasons(ctx context.Context, filter usecase.Filter) ([]season.Season, error) {
	index, err := c.index(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch ftc season index: %w", err)
	}

	programID := c.programID(filter)
	out := make([]season.Season, 0, max(index.MaxSeason-firstSeason+1, 0))
	for year := index.MaxSeason; year >= firstSeason; year-- {
		out = append(out, buildSeason(year, programID))
	}
	return out, nil
}

func (c *Client) GetCurrentSeasonID(ctx context.Context, _ program.Descriptor) (int, error) {
	c.mu.RLock()
	cached := c.currentSeason
	c.mu.RUnlock()
	if cached > 0 {
		return cached, nil
	}

	index, err := c.index(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch ftc season index: %w", err)
	}
	if index.CurrentSeason <= 0 {
		return 0, fmt.Errorf("%w: ftc events reported no current season", usecase.ErrNotFound)
	}

	c.mu.Lock()
	c.currentSeason = index.CurrentSeason
	c.mu.Unlock()
	return index.CurrentSeason, nil
}

func (c *Client) GetEventByID(ctx context.Context, eventID int) (event.Event, bool, error) {
	if eventID <= 0 {
		return event.Event{}, false, fmt.Errorf("event id must be greater than zero")
	}
	key, err := c.resolveEvent(ctx, eventID)
	if errors.Is(err, usecase.ErrNotFound) {
		return event.Event{}, false, nil
	}
	if err != nil {
		return event.Event{}, false, err
	}

	query := url.Values{}
	query.Set("eventCode", key.code)
	var payload apiEventList
	err = c.doJSON(ctx, fmt.Sprintf("/%d/events", key.season), query, &payload)
	if errors.Is(err, usecase.ErrNotFound) {
		return event.Event{}, false, nil
	}
	if err != nil {
		return event.Event{}, false, fmt.Errorf("fetch event code=%s season=%d: %w", key.code, key.season, err)
	}
	for _, item := range payload.Events {
		if strings.EqualFold(item.Code, key.code) {
			return c.mapEvent(item, key.season), true, nil
		}
	}
	return event.Event{}, false, nil
}

func (c *Client) GetEventTeams(ctx context.Context, eventID int, filter usecase.Filter) ([]team.Team, error) {
	key, err := c.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("eventCode", key.code)
	items, err := c.fetchTeams(ctx, key.season, query)
	if err != nil {
		return nil, fmt.Errorf("fetch event teams code=%s: %w", key.code, err)
	}
	programID := c.programID(filter)
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, mapTeam(item, programID))
	}
	return out, nil
}

func (c *Client) GetEventAwards(ctx context.Context, eventID int, _ usecase.Filter) ([]award.Award, error) {
	key, err := c.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return c.eventAwards(ctx, key, eventID, 0)
}

// Events have a single division; divisionID is accepted for parity with
// the other family.
func (c *Client) GetEventDivisionRankings(ctx context.Context, eventID, _ int, _ usecase.Filter) ([]ranking.Ranking, error) {
	key, err := c.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return c.eventRankings(ctx, key, eventID)
}

func (c *Client) GetEventDivisionMatches(ctx context.Context, eventID, _ int, _ usecase.Filter) ([]match.Match, error) {
	key, err := c.resolveEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return c.eventMatches(ctx, key, eventID)
}

func (c *Client) GetTeamByNumber(ctx context.Context, number string, programID int) (team.Team, bool, error) {
	teamNumber, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || teamNumber <= 0 {
		return team.Team{}, false, fmt.Errorf("%w: team number %q must be numeric", usecase.ErrInvalidInput, number)
	}
	if programID == 0 {
		programID = c.currentProgram().ID
	}
	seasonYear, err := c.seasonOrCurrent(ctx, 0)
	if err != nil {
		return team.Team{}, false, err
	}

	query := url.Values{}
	query.Set("teamNumber", strconv.Itoa(teamNumber))
	items, err := c.fetchTeams(ctx, seasonYear, query)
	if errors.Is(err, usecase.ErrNotFound) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("fetch team number=%d: %w", teamNumber, err)
	}
	for _, item := range items {
		if item.TeamNumber == teamNumber {
			return mapTeam(item, programID), true, nil
		}
	}
	return team.Team{}, false, nil
}

func (c *Client) GetTeamEvents(ctx context.Context, teamID int, filter usecase.Filter) ([]event.Event, error) {
	seasonYear, err := c.seasonOrCurrent(ctx, filter.SeasonID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("teamNumber", strconv.Itoa(teamID))
	var payload apiEventList
	if err := c.doJSON(ctx, fmt.Sprintf("/%d/events", seasonYear), query, &payload); err != nil {
		return nil, fmt.Errorf("fetch team events team=%d season=%d: %w", teamID, seasonYear, err)
	}

	out := make([]event.Event, 0, len(payload.Events))
	for _, item := range payload.Events {
		mapped := c.mapEvent(item, seasonYear)
		if !filter.Start.IsZero() && !mapped.End.IsZero() && mapped.End.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && !mapped.Start.IsZero() && mapped.Start.After(filter.End) {
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) GetTeamMatches(ctx context.Context, teamID int, filter usecase.Filter) ([]match.Match, error) {
	return forTeamEvents(ctx, c, teamID, filter, func(ctx context.Context, key eventKey, eventID int) ([]match.Match, error) {
		items, err := c.eventMatches(ctx, key, eventID)
		if err != nil {
			return nil, err
		}
		out := make([]match.Match, 0, len(items))
		for _, item := range items {
			if item.HasTeam(teamID) {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

func (c *Client) GetTeamRankings(ctx context.Context, teamID int, filter usecase.Filter) ([]ranking.Ranking, error) {
	return forTeamEvents(ctx, c, teamID, filter, func(ctx context.Context, key eventKey, eventID int) ([]ranking.Ranking, error) {
		items, err := c.eventRankings(ctx, key, eventID)
		if err != nil {
			return nil, err
		}
		out := make([]ranking.Ranking, 0, 1)
		for _, item := range items {
			if item.Team.ID == teamID {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

func (c *Client) GetTeamAwards(ctx context.Context, teamID int, filter usecase.Filter) ([]award.Award, error) {
	return forTeamEvents(ctx, c, teamID, filter, func(ctx context.Context, key eventKey, eventID int) ([]award.Award, error) {
		return c.eventAwards(ctx, key, eventID, teamID)
	})
}

func (c *Client) GetWorldSkillsRankings(context.Context, int, program.Grade) ([]ranking.SkillRecord, error) {
	return nil, fmt.Errorf("%w: ftc events has no season-wide skills standings", usecase.ErrUnsupported)
}

func (c *Client) index(ctx context.Context) (apiIndex, error) {
	var payload apiIndex
	if err := c.doJSON(ctx, "", nil, &payload); err != nil {
		return apiIndex{}, err
	}
	return payload, nil
}

func (c *Client) seasonOrCurrent(ctx context.Context, seasonID int) (int, error) {
	if seasonID > 0 {
		return seasonID, nil
	}
	return c.GetCurrentSeasonID(ctx, c.currentProgram())
}

// resolveEvent maps an id back to its season and event code. An id this
// process has not seen yet triggers one listing of the season encoded in it.
func (c *Client) resolveEvent(ctx context.Context, eventID int) (eventKey, error) {
	if key, ok := c.events.lookup(eventID); ok {
		return key, nil
	}

	seasonYear := seasonOfEventID(eventID)
	if seasonYear >= firstSeason && !c.events.isComplete(seasonYear) {
		if err := c.registerSeasonEvents(ctx, seasonYear); err != nil && !errors.Is(err, usecase.ErrNotFound) {
			return eventKey{}, fmt.Errorf("resolve event id=%d: %w", eventID, err)
		}
		if key, ok := c.events.lookup(eventID); ok {
			return key, nil
		}
	}
	return eventKey{}, fmt.Errorf("%w: event id=%d is not known to ftc events", usecase.ErrNotFound, eventID)
}

func (c *Client) registerSeasonEvents(ctx context.Context, seasonYear int) error {
	var payload apiEventList
	if err := c.doJSON(ctx, fmt.Sprintf("/%d/events", seasonYear), nil, &payload); err != nil {
		return err
	}
	for _, item := range payload.Events {
		c.events.register(seasonYear, item.Code)
	}
	c.events.markComplete(seasonYear)
	c.logger.DebugContext(ctx, "ftc season events registered", "season", seasonYear, "events", len(payload.Events))
	return nil
}

func (c *Client) mapEvent(item apiEvent, seasonYear int) event.Event {
	id := c.events.register(seasonYear, item.Code)
	return mapEvent(item, seasonYear, id, c.currentProgram())
}

func (c *Client) fetchTeams(ctx context.Context, seasonYear int, base url.Values) ([]apiTeam, error) {
	var out []apiTeam
	for page := 1; page <= maxTeamPages; page++ {
		query := url.Values{}
		for key, values := range base {
			query[key] = append([]string(nil), values...)
		}
		query.Set("page", strconv.Itoa(page))

		var payload apiTeamList
		if err := c.doJSON(ctx, fmt.Sprintf("/%d/teams", seasonYear), query, &payload); err != nil {
			return nil, err
		}
		out = append(out, payload.Teams...)
		if payload.PageTotal <= page {
			break
		}
	}
	return out, nil
}

func (c *Client) eventMatches(ctx context.Context, key eventKey, eventID int) ([]match.Match, error) {
	var out []match.Match
	for _, level := range scheduleLevels {
		var payload apiSchedule
		path := fmt.Sprintf("/%d/schedule/%s/%s/hybrid", key.season, url.PathEscape(key.code), level)
		if err := c.doJSON(ctx, path, nil, &payload); err != nil {
			return nil, fmt.Errorf("fetch %s schedule code=%s: %w", level, key.code, err)
		}
		for _, item := range payload.Schedule {
			out = append(out, mapMatch(item, eventID))
		}
	}
	return out, nil
}

func (c *Client) eventRankings(ctx context.Context, key eventKey, eventID int) ([]ranking.Ranking, error) {
	var payload apiRankingList
	path := fmt.Sprintf("/%d/rankings/%s", key.season, url.PathEscape(key.code))
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch rankings code=%s: %w", key.code, err)
	}
	out := make([]ranking.Ranking, 0, len(payload.Rankings))
	for _, item := range payload.Rankings {
		out = append(out, mapRanking(item, eventID))
	}
	return out, nil
}

func (c *Client) eventAwards(ctx context.Context, key eventKey, eventID, teamNumber int) ([]award.Award, error) {
	query := url.Values{}
	if teamNumber > 0 {
		query.Set("teamNumber", strconv.Itoa(teamNumber))
	}
	var payload apiAwardList
	path := fmt.Sprintf("/%d/awards/%s", key.season, url.PathEscape(key.code))
	if err := c.doJSON(ctx, path, query, &payload); err != nil {
		return nil, fmt.Errorf("fetch awards code=%s: %w", key.code, err)
	}
	return mapAwards(payload.Awards, eventID), nil
}

func (c *Client) programID(filter usecase.Filter) int {
	if filter.ProgramID > 0 {
		return filter.ProgramID
	}
	return c.currentProgram().ID
}

// forTeamEvents runs fn against filter.EventID, or against every event the
// team attends in the filtered season, and concatenates the results in
// event order.
func forTeamEvents[T any](ctx context.Context, c *Client, teamID int, filter usecase.Filter, fn func(context.Context, eventKey, int) ([]T, error)) ([]T, error) {
	var eventIDs []int
	if filter.EventID > 0 {
		eventIDs = []int{filter.EventID}
	} else {
		events, err := c.GetTeamEvents(ctx, teamID, filter)
		if err != nil {
			return nil, err
		}
		for _, item := range events {
			eventIDs = append(eventIDs, item.ID)
		}
	}

	mapper := iter.Mapper[int, []T]{MaxGoroutines: teamFanoutLimit}
	chunks, err := mapper.MapErr(eventIDs, func(eventID *int) ([]T, error) {
		key, err := c.resolveEvent(ctx, *eventID)
		if err != nil {
			return nil, err
		}
		return fn(ctx, key, *eventID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch team=%d event data: %w", teamID, err)
	}

	var out []T
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out, nil
}
