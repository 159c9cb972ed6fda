package ftcevents

import (
	"strconv"
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

const (
	// Oldest season served by the v2.0 API.
	firstSeason = 2019

	defaultDivisionID = 1
)

// Upstream timestamps carry no offset; they are read as UTC.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseAPITime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
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

// buildSeason describes the season that kicks off in September of year.
func buildSeason(year, programID int) season.Season {
	return season.Season{
		ID:        year,
		ProgramID: programID,
		Name:      strconv.Itoa(year) + "-" + strconv.Itoa(year+1),
		Start:     time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(year+1, time.August, 31, 23, 59, 59, 0, time.UTC),
		YearStart: year,
		YearEnd:   year + 1,
	}
}

func mapEvent(item apiEvent, seasonYear int, id int, p program.Descriptor) event.Event {
	code := p.Code
	if code == "" {
		code = "FTC"
	}
	return event.Event{
		ID:          id,
		SKU:         strings.ToUpper(strings.TrimSpace(item.Code)),
		Name:        strings.TrimSpace(item.Name),
		Start:       parseAPITime(item.DateStart),
		End:         parseAPITime(item.DateEnd),
		SeasonID:    seasonYear,
		ProgramID:   p.ID,
		ProgramCode: strings.ToUpper(code),
		Level:       strings.TrimSpace(item.TypeName),
		Location: event.Location{
			Venue:   strings.TrimSpace(item.Venue),
			Address: strings.TrimSpace(item.Address),
			City:    strings.TrimSpace(item.City),
			Region:  strings.TrimSpace(item.StateProv),
			Country: strings.TrimSpace(item.Country),
		},
		Divisions: []event.Division{{ID: defaultDivisionID, Name: "Default", Order: 1}},
	}
}

func mapTeam(item apiTeam, programID int) team.Team {
	organization := strings.TrimSpace(item.SchoolName)
	if organization == "" {
		organization = strings.TrimSpace(item.NameFull)
	}
	return team.Team{
		ID:           item.TeamNumber,
		Number:       strconv.Itoa(item.TeamNumber),
		Name:         strings.TrimSpace(item.NameShort),
		RobotName:    strings.TrimSpace(item.RobotName),
		Organization: organization,
		City:         strings.TrimSpace(item.City),
		Region:       strings.TrimSpace(item.StateProv),
		Country:      strings.TrimSpace(item.Country),
		ProgramID:    programID,
		Registered:   true,
	}
}

func teamRef(number int, name string) team.Ref {
	return team.Ref{ID: number, Number: strconv.Itoa(number), Name: strings.TrimSpace(name)}
}

func mapMatch(item apiScheduleMatch, eventID int) match.Match {
	out := match.Match{
		ID:         matchID(item),
		EventID:    eventID,
		DivisionID: defaultDivisionID,
		Name:       strings.TrimSpace(item.Description),
		Round:      roundOf(item),
		Instance:   item.Series,
		Number:     item.MatchNumber,
		Field:      strings.TrimSpace(item.Field),
		Scheduled:  parseAPITimePtr(item.StartTime),
		StartedAt:  parseAPITimePtr(item.ActualStartTime),
	}
	out.Started = out.StartedAt != nil || parseAPITimePtr(item.PostResultTime) != nil

	red := match.Alliance{Color: "red", Score: item.ScoreRedFinal}
	blue := match.Alliance{Color: "blue", Score: item.ScoreBlueFinal}
	for _, member := range item.Teams {
		ref := teamRef(member.TeamNumber, "")
		switch {
		case strings.HasPrefix(strings.ToLower(member.Station), "red"):
			red.Teams = append(red.Teams, ref)
		case strings.HasPrefix(strings.ToLower(member.Station), "blue"):
			blue.Teams = append(blue.Teams, ref)
		}
	}
	out.Alliances = []match.Alliance{red, blue}
	return out
}

// Qualification and playoff numbering overlap, so playoff ids are offset.
func matchID(item apiScheduleMatch) int {
	if strings.EqualFold(item.TournamentLevel, "qualification") {
		return item.MatchNumber
	}
	return 1000 + item.Series*100 + item.MatchNumber
}

func roundOf(item apiScheduleMatch) int {
	level := strings.ToLower(item.TournamentLevel)
	description := strings.ToLower(item.Description)
	switch {
	case level == "qualification":
		return match.RoundQualification
	case level == "practice":
		return match.RoundPractice
	case strings.Contains(description, "semi"):
		return match.RoundSemifinal
	case strings.Contains(description, "final"):
		return match.RoundFinal
	default:
		return match.RoundTopN
	}
}

// FTC ranking scores are fractional and land in AveragePoints.
func mapRanking(item apiRanking, eventID int) ranking.Ranking {
	return ranking.Ranking{
		ID:            item.TeamNumber,
		EventID:       eventID,
		DivisionID:    defaultDivisionID,
		Rank:          item.Rank,
		Team:          teamRef(item.TeamNumber, item.TeamName),
		Wins:          item.Wins,
		Losses:        item.Losses,
		Ties:          item.Ties,
		AveragePoints: item.SortOrder1,
		TotalPoints:   int(item.QualAverage * float64(item.MatchesPlayed)),
	}
}

// mapAwards folds the per-winner rows into one award per id and series.
func mapAwards(items []apiAward, eventID int) []award.Award {
	type awardKey struct{ id, series int }

	grouped := make(map[awardKey]*award.Award, len(items))
	order := make([]awardKey, 0, len(items))
	for _, item := range items {
		key := awardKey{id: item.AwardID, series: item.Series}
		current, ok := grouped[key]
		if !ok {
			current = &award.Award{
				ID:      item.AwardID*10 + item.Series,
				EventID: eventID,
				Title:   strings.TrimSpace(item.Name),
				Order:   len(order) + 1,
			}
			grouped[key] = current
			order = append(order, key)
		}
		if item.TeamNumber != nil && *item.TeamNumber > 0 {
			current.Teams = append(current.Teams, teamRef(*item.TeamNumber, ""))
		}
		if item.Person != nil && strings.TrimSpace(*item.Person) != "" {
			current.Individuals = append(current.Individuals, strings.TrimSpace(*item.Person))
		}
	}

	out := make([]award.Award, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out
}
