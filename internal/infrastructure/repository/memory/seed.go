package memory

import (
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
	ProgramIDV5RC = 1
	ProgramIDFTC  = 1000

	SeasonIDV5RC = 197
	SeasonIDFTC  = 2025

	EventIDSignature = 5001
	EventIDLeague    = 5002
	EventIDHarbor    = 5003
	EventIDFTCMeet   = 900001
)

// SeedRobotEvents builds a V5RC dataset around now: a finished signature
// event, a weekly league with a session today and a one-day tournament
// running today.
func SeedRobotEvents(now time.Time) Dataset {
	now = now.UTC()
	league := event.Event{
		ID:          EventIDLeague,
		SKU:         "RE-V5RC-25-5002",
		Name:        "Riverside League",
		Start:       at(now, -7, 9),
		End:         at(now, 7, 17),
		SeasonID:    SeasonIDV5RC,
		ProgramID:   ProgramIDV5RC,
		ProgramCode: "V5RC",
		Level:       "Other",
		Location:    event.Location{Venue: "Riverside High", City: "Riverside", Region: "California", Country: "United States"},
		Locations: map[string]event.Location{
			dateKey(now, -7): {Venue: "Riverside High", City: "Riverside"},
			dateKey(now, 0):  {Venue: "Riverside Library", City: "Riverside"},
			dateKey(now, 7):  {Venue: "Riverside High", City: "Riverside"},
		},
		Divisions: []event.Division{{ID: 1, Name: "Division 1", Order: 1}},
	}

	return Dataset{
		Seasons: []season.Season{
			{ID: 190, ProgramID: ProgramIDV5RC, Name: "V5RC 2024-2025: High Stakes", Start: at(now, -540, 0), End: at(now, -170, 0), YearStart: now.Year() - 1, YearEnd: now.Year()},
			{ID: SeasonIDV5RC, ProgramID: ProgramIDV5RC, Name: "V5RC 2025-2026: Push Back", Start: at(now, -160, 0), End: at(now, 200, 0), YearStart: now.Year(), YearEnd: now.Year() + 1},
		},
		CurrentSeason: map[int]int{ProgramIDV5RC: SeasonIDV5RC},
		Events: []event.Event{
			{
				ID:          EventIDSignature,
				SKU:         "RE-V5RC-25-5001",
				Name:        "Gateway Signature Event",
				Start:       at(now, -30, 8),
				End:         at(now, -29, 18),
				SeasonID:    SeasonIDV5RC,
				ProgramID:   ProgramIDV5RC,
				ProgramCode: "V5RC",
				Level:       "Signature",
				Location:    event.Location{Venue: "Convention Center", City: "St. Louis", Region: "Missouri", Country: "United States"},
				Divisions:   []event.Division{{ID: 1, Name: "Technology", Order: 1}},
			},
			league,
			{
				ID:          EventIDHarbor,
				SKU:         "RE-V5RC-25-5003",
				Name:        "Harbor Tournament",
				Start:       at(now, 0, 8),
				End:         at(now, 0, 18),
				SeasonID:    SeasonIDV5RC,
				ProgramID:   ProgramIDV5RC,
				ProgramCode: "V5RC",
				Level:       "Other",
				Location:    event.Location{Venue: "Harbor Gym", City: "Long Beach", Region: "California", Country: "United States"},
				Divisions:   []event.Division{{ID: 1, Name: "Division 1", Order: 1}},
			},
		},
		Teams: []team.Team{
			{ID: 101, Number: "229V", Name: "Ace", Organization: "Ace Robotics", City: "Riverside", Region: "California", Country: "United States", ProgramID: ProgramIDV5RC, Grade: program.GradeHigh, Registered: true},
			{ID: 102, Number: "1010A", Name: "Binary Bots", Organization: "North Middle", City: "Irvine", Region: "California", Country: "United States", ProgramID: ProgramIDV5RC, Grade: program.GradeMiddle, Registered: true},
			{ID: 103, Number: "5225A", Name: "Pilons", Organization: "Pilons Robotics", City: "Atlanta", Region: "Georgia", Country: "United States", ProgramID: ProgramIDV5RC, Grade: program.GradeHigh, Registered: true},
		},
		Registrations: []Registration{
			{EventID: EventIDSignature, TeamID: 101},
			{EventID: EventIDSignature, TeamID: 102},
			{EventID: EventIDLeague, TeamID: 101},
			{EventID: EventIDLeague, TeamID: 103},
			{EventID: EventIDHarbor, TeamID: 101},
			{EventID: EventIDHarbor, TeamID: 102},
		},
		Matches: []match.Match{
			seedMatch(1, EventIDSignature, "Qualifier #1", at(now, -30, 9), true, 48, 32, 101, 102),
			seedMatch(2, EventIDSignature, "Qualifier #2", at(now, -30, 10), true, 21, 40, 102, 101),
			seedMatch(11, EventIDLeague, "Qualifier #1", at(now, -7, 10), true, 30, 12, 101, 103),
			seedMatch(12, EventIDLeague, "Qualifier #2", at(now, 0, 10), false, 0, 0, 103, 101),
			seedMatch(21, EventIDHarbor, "Qualifier #1", at(now, 0, 9), true, 55, 41, 101, 102),
			seedMatch(22, EventIDHarbor, "Qualifier #2", at(now, 0, 13), false, 0, 0, 102, 101),
			seedMatch(23, EventIDHarbor, "Qualifier #3", at(now, 0, 14), false, 0, 0, 101, 102),
		},
		Rankings: []ranking.Ranking{
			{ID: 1, EventID: EventIDSignature, DivisionID: 1, Rank: 1, Team: team.Ref{ID: 101, Number: "229V"}, Wins: 2, WP: 4, AP: 16, SP: 53, HighScore: 48, AveragePoints: 44, TotalPoints: 88},
			{ID: 2, EventID: EventIDSignature, DivisionID: 1, Rank: 2, Team: team.Ref{ID: 102, Number: "1010A"}, Losses: 2, SP: 53, HighScore: 32, AveragePoints: 26.5, TotalPoints: 53},
		},
		Awards: []award.Award{
			{ID: 1, EventID: EventIDSignature, Title: "Excellence Award (VRC/VEXU/VAIRC)", Order: 1, Qualifications: []string{"World Championship"}, Teams: []team.Ref{{ID: 101, Number: "229V"}}},
			{ID: 2, EventID: EventIDSignature, Title: "Volunteer of the Year", Order: 2, Individuals: []string{"Pat Volunteer"}},
		},
		SkillsBySeason: map[int][]ranking.SkillRecord{
			SeasonIDV5RC: {
				{Rank: 1, Team: team.Ref{ID: 103, Number: "5225A", Name: "Pilons"}, Organization: "Pilons Robotics", Region: "Georgia", Country: "United States", Grade: program.GradeHigh, Score: 312, ProgrammingScore: 140, DriverScore: 172},
				{Rank: 2, Team: team.Ref{ID: 101, Number: "229V", Name: "Ace"}, Organization: "Ace Robotics", Region: "California", Country: "United States", Grade: program.GradeHigh, Score: 298, ProgrammingScore: 130, DriverScore: 168},
				{Rank: 1, Team: team.Ref{ID: 102, Number: "1010A", Name: "Binary Bots"}, Organization: "North Middle", Region: "California", Country: "United States", Grade: program.GradeMiddle, Score: 240, ProgrammingScore: 100, DriverScore: 140},
			},
		},
	}
}

// SeedFTC builds a single-meet FTC dataset with the meet running today.
// Season-wide skills are not published for this family.
func SeedFTC(now time.Time) Dataset {
	now = now.UTC()
	return Dataset{
		Seasons: []season.Season{
			{ID: SeasonIDFTC, ProgramID: ProgramIDFTC, Name: "2025-2026", Start: at(now, -60, 0), End: at(now, 300, 0), YearStart: SeasonIDFTC, YearEnd: SeasonIDFTC + 1},
		},
		CurrentSeason: map[int]int{ProgramIDFTC: SeasonIDFTC},
		Events: []event.Event{
			{
				ID:          EventIDFTCMeet,
				SKU:         "USCAFFL1",
				Name:        "SoCal League Meet 1",
				Start:       at(now, 0, 8),
				End:         at(now, 0, 17),
				SeasonID:    SeasonIDFTC,
				ProgramID:   ProgramIDFTC,
				ProgramCode: "FTC",
				Level:       "League Meet",
				Location:    event.Location{Venue: "Hall", City: "Irvine", Region: "CA", Country: "USA"},
				Divisions:   []event.Division{{ID: 1, Name: "Default", Order: 1}},
			},
		},
		Teams: []team.Team{
			{ID: 16072, Number: "16072", Name: "Quantum Quacks", Organization: "Irvine High", City: "Irvine", Region: "CA", Country: "USA", ProgramID: ProgramIDFTC, Registered: true},
			{ID: 7196, Number: "7196", Name: "Gearheads", Organization: "Tustin High", City: "Tustin", Region: "CA", Country: "USA", ProgramID: ProgramIDFTC, Registered: true},
		},
		Registrations: []Registration{
			{EventID: EventIDFTCMeet, TeamID: 16072},
			{EventID: EventIDFTCMeet, TeamID: 7196},
		},
		Matches: []match.Match{
			seedMatch(1, EventIDFTCMeet, "Qualification 1", at(now, 0, 9), true, 88, 61, 16072, 7196),
			seedMatch(2, EventIDFTCMeet, "Qualification 2", at(now, 0, 11), false, 0, 0, 7196, 16072),
		},
		Rankings: []ranking.Ranking{
			{ID: 16072, EventID: EventIDFTCMeet, DivisionID: 1, Rank: 1, Team: team.Ref{ID: 16072, Number: "16072"}, Wins: 1, AveragePoints: 2},
			{ID: 7196, EventID: EventIDFTCMeet, DivisionID: 1, Rank: 2, Team: team.Ref{ID: 7196, Number: "7196"}, Losses: 1},
		},
	}
}

func seedMatch(id, eventID int, name string, scheduled time.Time, started bool, red, blue int, redTeam, blueTeam int) match.Match {
	out := match.Match{
		ID:         id,
		EventID:    eventID,
		DivisionID: 1,
		Name:       name,
		Round:      match.RoundQualification,
		Instance:   1,
		Number:     id,
		Scheduled:  &scheduled,
		Started:    started,
		Alliances: []match.Alliance{
			{Color: "red", Score: match.IntPtr(red), Teams: []team.Ref{{ID: redTeam}}},
			{Color: "blue", Score: match.IntPtr(blue), Teams: []team.Ref{{ID: blueTeam}}},
		},
	}
	if started {
		startedAt := scheduled.Add(2 * time.Minute)
		out.StartedAt = &startedAt
	}
	return out
}

func at(now time.Time, dayOffset, hour int) time.Time {
	y, m, d := now.AddDate(0, 0, dayOffset).Date()
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func dateKey(now time.Time, dayOffset int) string {
	return now.AddDate(0, 0, dayOffset).Format("2006-01-02")
}
