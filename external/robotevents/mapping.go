package robotevents

import (
	"strings"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseAPITime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func parseAPITimePtr(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed := parseAPITime(*value)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}

func mapSeason(item apiSeason) season.Season {
	return season.Season{
		ID:        item.ID,
		ProgramID: item.Program.ID,
		Name:      strings.TrimSpace(item.Name),
		Start:     parseAPITime(item.Start),
		End:       parseAPITime(item.End),
		YearStart: item.YearsStart,
		YearEnd:   item.YearsEnd,
	}
}

func mapLocation(item apiLocation) event.Location {
	return event.Location{
		Venue:    strings.TrimSpace(item.Venue),
		Address:  strings.TrimSpace(item.Address1),
		City:     strings.TrimSpace(item.City),
		Region:   strings.TrimSpace(item.Region),
		Country:  strings.TrimSpace(item.Country),
		Postcode: strings.TrimSpace(item.Postcode),
	}
}

func mapEvent(item apiEvent) event.Event {
	out := event.Event{
		ID:          item.ID,
		SKU:         strings.TrimSpace(item.SKU),
		Name:        strings.TrimSpace(item.Name),
		Start:       parseAPITime(item.Start),
		End:         parseAPITime(item.End),
		SeasonID:    item.Season.ID,
		ProgramID:   item.Program.ID,
		ProgramCode: strings.ToUpper(strings.TrimSpace(item.Program.Code)),
		Level:       item.Level,
		Location:    mapLocation(item.Location),
	}
	if len(item.Locations) > 0 {
		out.Locations = make(map[string]event.Location, len(item.Locations))
		for date, location := range item.Locations {
			out.Locations[date] = mapLocation(location)
		}
	}
	out.Divisions = make([]event.Division, 0, len(item.Divisions))
	for _, division := range item.Divisions {
		out.Divisions = append(out.Divisions, event.Division{ID: division.ID, Name: division.Name, Order: division.Order})
	}
	return out
}

func mapTeam(item apiTeam) team.Team {
	return team.Team{
		ID:           item.ID,
		Number:       strings.TrimSpace(item.Number),
		Name:         strings.TrimSpace(item.TeamName),
		RobotName:    strings.TrimSpace(item.RobotName),
		Organization: strings.TrimSpace(item.Organization),
		City:         strings.TrimSpace(item.Location.City),
		Region:       strings.TrimSpace(item.Location.Region),
		Country:      strings.TrimSpace(item.Location.Country),
		ProgramID:    item.Program.ID,
		Grade:        program.Grade(strings.TrimSpace(item.Grade)),
		Registered:   item.Registered,
	}
}

// Team references carry the team number in the name field.
func mapTeamRef(item idRef) team.Ref {
	return team.Ref{ID: item.ID, Number: strings.TrimSpace(item.Name)}
}

func mapMatch(item apiMatch) match.Match {
	out := match.Match{
		ID:         item.ID,
		EventID:    item.Event.ID,
		DivisionID: item.Division.ID,
		Name:       strings.TrimSpace(item.Name),
		Round:      item.Round,
		Instance:   item.Instance,
		Number:     item.MatchNum,
		Field:      strings.TrimSpace(item.Field),
		Scheduled:  parseAPITimePtr(item.Scheduled),
		StartedAt:  parseAPITimePtr(item.Started),
	}
	out.Started = item.Started != nil && strings.TrimSpace(*item.Started) != ""
	out.Alliances = make([]match.Alliance, 0, len(item.Alliances))
	for _, alliance := range item.Alliances {
		teams := make([]team.Ref, 0, len(alliance.Teams))
		for _, member := range alliance.Teams {
			teams = append(teams, mapTeamRef(member.Team))
		}
		out.Alliances = append(out.Alliances, match.Alliance{
			Color: strings.ToLower(strings.TrimSpace(alliance.Color)),
			Score: alliance.Score,
			Teams: teams,
		})
	}
	return out
}

func mapRanking(item apiRanking) ranking.Ranking {
	return ranking.Ranking{
		ID:            item.ID,
		EventID:       item.Event.ID,
		DivisionID:    item.Division.ID,
		Rank:          item.Rank,
		Team:          mapTeamRef(item.Team),
		Wins:          item.Wins,
		Losses:        item.Losses,
		Ties:          item.Ties,
		WP:            item.WP,
		AP:            item.AP,
		SP:            item.SP,
		HighScore:     item.HighScore,
		AveragePoints: item.AveragePoints,
		TotalPoints:   item.TotalPoints,
	}
}

func mapAward(item apiAward) award.Award {
	out := award.Award{
		ID:             item.ID,
		EventID:        item.Event.ID,
		Title:          strings.TrimSpace(item.Title),
		Order:          item.Order,
		Qualifications: append([]string{}, item.Qualifications...),
		Individuals:    append([]string{}, item.IndividualWinners...),
	}
	out.Teams = make([]team.Ref, 0, len(item.TeamWinners))
	for _, winner := range item.TeamWinners {
		out.Teams = append(out.Teams, mapTeamRef(winner.Team))
	}
	return out
}

func mapSkill(item apiSkillEntry) ranking.SkillRecord {
	return ranking.SkillRecord{
		Rank:             item.Rank,
		Team:             team.Ref{ID: item.Team.ID, Number: strings.TrimSpace(item.Team.Team), Name: strings.TrimSpace(item.Team.TeamName)},
		Organization:     strings.TrimSpace(item.Team.Organization),
		Region:           strings.TrimSpace(item.Team.Region),
		Country:          strings.TrimSpace(item.Team.Country),
		Grade:            program.Grade(strings.TrimSpace(item.Team.GradeLevel)),
		Score:            item.Scores.Score,
		ProgrammingScore: item.Scores.Programming,
		DriverScore:      item.Scores.Driver,
		ProgrammingStop:  item.Scores.ProgStopTime,
		DriverStop:       item.Scores.DriverStopTime,
	}
}

func mapList[S, D any](items []S, fn func(S) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
