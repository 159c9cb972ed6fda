package robotevents

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
)

func (c *Client) GetSeasons(ctx context.Context, filter usecase.Filter) ([]season.Season, error) {
	programID := c.programID(filter)
	query := url.Values{}
	if programID > 0 {
		query.Add("program[]", strconv.Itoa(programID))
	}

	items, err := fetchAll[apiSeason](ctx, c, c.apiRequest("/seasons", query, programID))
	if err != nil {
		return nil, fmt.Errorf("fetch seasons program=%d: %w", programID, err)
	}
	return mapList(items, mapSeason), nil
}

func (c *Client) GetCurrentSeasonID(ctx context.Context, p program.Descriptor) (int, error) {
	query := url.Values{}
	query.Add("program[]", strconv.Itoa(p.ID))
	query.Set("active", "true")

	items, err := fetchAll[apiSeason](ctx, c, c.apiRequest("/seasons", query, p.ID))
	if err != nil {
		return 0, fmt.Errorf("fetch active seasons program=%d: %w", p.ID, err)
	}
	current, ok := season.Current(mapList(items, mapSeason), c.now())
	if !ok {
		return 0, fmt.Errorf("%w: no active season for program %d", usecase.ErrNotFound, p.ID)
	}
	return current.ID, nil
}

func (c *Client) GetEventByID(ctx context.Context, eventID int) (event.Event, bool, error) {
	if eventID <= 0 {
		return event.Event{}, false, fmt.Errorf("event id must be greater than zero")
	}

	var item apiEvent
	err := c.doJSON(ctx, c.apiRequest(fmt.Sprintf("/events/%d", eventID), nil, c.currentProgram().ID), &item)
	if errors.Is(err, usecase.ErrNotFound) {
		return event.Event{}, false, nil
	}
	if err != nil {
		return event.Event{}, false, fmt.Errorf("fetch event id=%d: %w", eventID, err)
	}
	return mapEvent(item), true, nil
}

func (c *Client) GetEventTeams(ctx context.Context, eventID int, filter usecase.Filter) ([]team.Team, error) {
	query := url.Values{}
	if filter.Grade != "" {
		query.Add("grade[]", string(filter.Grade))
	}
	items, err := fetchAll[apiTeam](ctx, c, c.apiRequest(fmt.Sprintf("/events/%d/teams", eventID), query, c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch event teams event=%d: %w", eventID, err)
	}
	return mapList(items, mapTeam), nil
}

func (c *Client) GetEventAwards(ctx context.Context, eventID int, filter usecase.Filter) ([]award.Award, error) {
	items, err := fetchAll[apiAward](ctx, c, c.apiRequest(fmt.Sprintf("/events/%d/awards", eventID), nil, c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch event awards event=%d: %w", eventID, err)
	}
	return mapList(items, mapAward), nil
}

func (c *Client) GetEventDivisionRankings(ctx context.Context, eventID, divisionID int, filter usecase.Filter) ([]ranking.Ranking, error) {
	path := fmt.Sprintf("/events/%d/divisions/%d/rankings", eventID, divisionID)
	items, err := fetchAll[apiRanking](ctx, c, c.apiRequest(path, nil, c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch division rankings event=%d division=%d: %w", eventID, divisionID, err)
	}
	return mapList(items, mapRanking), nil
}

func (c *Client) GetEventDivisionMatches(ctx context.Context, eventID, divisionID int, filter usecase.Filter) ([]match.Match, error) {
	path := fmt.Sprintf("/events/%d/divisions/%d/matches", eventID, divisionID)
	items, err := fetchAll[apiMatch](ctx, c, c.apiRequest(path, nil, c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch division matches event=%d division=%d: %w", eventID, divisionID, err)
	}
	return mapList(items, mapMatch), nil
}

func (c *Client) GetTeamByNumber(ctx context.Context, number string, programID int) (team.Team, bool, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return team.Team{}, false, fmt.Errorf("team number is required")
	}
	if programID == 0 {
		programID = c.currentProgram().ID
	}

	query := url.Values{}
	query.Add("number[]", number)
	if programID > 0 {
		query.Add("program[]", strconv.Itoa(programID))
	}
	items, err := fetchAll[apiTeam](ctx, c, c.apiRequest("/teams", query, programID))
	if err != nil {
		return team.Team{}, false, fmt.Errorf("fetch team number=%s: %w", number, err)
	}
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Number), number) {
			return mapTeam(item), true, nil
		}
	}
	return team.Team{}, false, nil
}

func (c *Client) GetTeamEvents(ctx context.Context, teamID int, filter usecase.Filter) ([]event.Event, error) {
	items, err := fetchAll[apiEvent](ctx, c, c.apiRequest(fmt.Sprintf("/teams/%d/events", teamID), teamQuery(filter), c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch team events team=%d: %w", teamID, err)
	}
	return mapList(items, mapEvent), nil
}

func (c *Client) GetTeamMatches(ctx context.Context, teamID int, filter usecase.Filter) ([]match.Match, error) {
	items, err := fetchAll[apiMatch](ctx, c, c.apiRequest(fmt.Sprintf("/teams/%d/matches", teamID), teamQuery(filter), c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch team matches team=%d: %w", teamID, err)
	}
	return mapList(items, mapMatch), nil
}

func (c *Client) GetTeamRankings(ctx context.Context, teamID int, filter usecase.Filter) ([]ranking.Ranking, error) {
	items, err := fetchAll[apiRanking](ctx, c, c.apiRequest(fmt.Sprintf("/teams/%d/rankings", teamID), teamQuery(filter), c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch team rankings team=%d: %w", teamID, err)
	}
	return mapList(items, mapRanking), nil
}

func (c *Client) GetTeamAwards(ctx context.Context, teamID int, filter usecase.Filter) ([]award.Award, error) {
	items, err := fetchAll[apiAward](ctx, c, c.apiRequest(fmt.Sprintf("/teams/%d/awards", teamID), teamQuery(filter), c.programID(filter)))
	if err != nil {
		return nil, fmt.Errorf("fetch team awards team=%d: %w", teamID, err)
	}
	return mapList(items, mapAward), nil
}

func (c *Client) GetWorldSkillsRankings(ctx context.Context, seasonID int, grade program.Grade) ([]ranking.SkillRecord, error) {
	if seasonID <= 0 {
		return nil, fmt.Errorf("season id must be greater than zero")
	}

	query := url.Values{}
	query.Set("post_season", "0")
	if grade != "" {
		query.Set("grade_level", string(grade))
	}
	req := request{
		baseURL:   c.skillsBaseURL,
		path:      fmt.Sprintf("/seasons/%d/skills", seasonID),
		query:     query,
		programID: c.currentProgram().ID,
	}

	var items []apiSkillEntry
	if err := c.doJSON(ctx, req, &items); err != nil {
		return nil, fmt.Errorf("fetch world skills season=%d grade=%s: %w", seasonID, grade, err)
	}
	return mapList(items, mapSkill), nil
}

func (c *Client) programID(filter usecase.Filter) int {
	if filter.ProgramID > 0 {
		return filter.ProgramID
	}
	return c.currentProgram().ID
}

func teamQuery(filter usecase.Filter) url.Values {
	query := url.Values{}
	if filter.SeasonID > 0 {
		query.Add("season[]", strconv.Itoa(filter.SeasonID))
	}
	if filter.EventID > 0 {
		query.Add("event[]", strconv.Itoa(filter.EventID))
	}
	if !filter.Start.IsZero() {
		query.Set("start", filter.Start.Format("2006-01-02"))
	}
	if !filter.End.IsZero() {
		query.Set("end", filter.End.Format("2006-01-02"))
	}
	return query
}
