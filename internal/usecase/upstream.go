package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
)

// Adapter is the uniform read API over one upstream service family.
type Adapter interface {
	Name() string
	Family() program.Family
	// SetCurrentProgram sets the program used to fill default filter values.
	SetCurrentProgram(p program.Descriptor)

	GetSeasons(ctx context.Context, filter Filter) ([]season.Season, error)
	GetCurrentSeasonID(ctx context.Context, p program.Descriptor) (int, error)
	GetEventByID(ctx context.Context, eventID int) (event.Event, bool, error)
	GetEventTeams(ctx context.Context, eventID int, filter Filter) ([]team.Team, error)
	GetEventAwards(ctx context.Context, eventID int, filter Filter) ([]award.Award, error)
	GetEventDivisionRankings(ctx context.Context, eventID, divisionID int, filter Filter) ([]ranking.Ranking, error)
	GetEventDivisionMatches(ctx context.Context, eventID, divisionID int, filter Filter) ([]match.Match, error)
	GetTeamByNumber(ctx context.Context, number string, programID int) (team.Team, bool, error)
	GetTeamEvents(ctx context.Context, teamID int, filter Filter) ([]event.Event, error)
	GetTeamMatches(ctx context.Context, teamID int, filter Filter) ([]match.Match, error)
	GetTeamRankings(ctx context.Context, teamID int, filter Filter) ([]ranking.Ranking, error)
	GetTeamAwards(ctx context.Context, teamID int, filter Filter) ([]award.Award, error)
	GetWorldSkillsRankings(ctx context.Context, seasonID int, grade program.Grade) ([]ranking.SkillRecord, error)

	IsInFailureState() bool
	// GetFailureInfo reports the failure state. ShouldShowNotification is true
	// on the first read of each failure episode only.
	GetFailureInfo() FailureInfo
}

// Filter narrows upstream list calls. Zero fields are unset; adapters fill
// ProgramID from the current program when it is zero.
type Filter struct {
	ProgramID int
	SeasonID  int
	EventID   int
	Grade     program.Grade
	Start     time.Time
	End       time.Time
}

type FailureInfo struct {
	InFailure              bool
	ShouldShowNotification bool
	Message                string
}
