package ranking

import (
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
)

// Ranking is one team's standing inside an event division.
type Ranking struct {
	ID            int
	EventID       int
	DivisionID    int
	Rank          int
	Team          team.Ref
	Wins          int
	Losses        int
	Ties          int
	WP            int
	AP            int
	SP            int
	HighScore     int
	AveragePoints float64
	TotalPoints   int
}

// SkillRecord is one row of the season-wide skills standings.
type SkillRecord struct {
	Rank             int
	Team             team.Ref
	Organization     string
	Region           string
	Country          string
	Grade            program.Grade
	Score            int
	ProgrammingScore int
	DriverScore      int
	ProgrammingStop  int
	DriverStop       int
}
