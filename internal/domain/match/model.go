package match

import (
	"regexp"
	"strconv"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/team"
)

// Round identifiers shared by both upstream families.
const (
	RoundPractice      = 1
	RoundQualification = 2
	RoundQuarterfinal  = 3
	RoundSemifinal     = 4
	RoundFinal         = 5
	RoundRoundOf16     = 6
	RoundTopN          = 15
)

var ordinalRegex = regexp.MustCompile(`\d+`)

// Alliance is one side of a match. Score is nil when upstream has not
// published one.
type Alliance struct {
	Color string
	Score *int
	Teams []team.Ref
}

type Match struct {
	ID         int
	EventID    int
	DivisionID int
	Name       string
	Round      int
	Instance   int
	Number     int
	Field      string
	Scheduled  *time.Time
	Started    bool
	StartedAt  *time.Time
	Alliances  []Alliance
}

// Ordinal is the match number encoded in the display name ("Qualifier #12",
// "Q12"), falling back to Number when the name carries none.
func (m Match) Ordinal() int {
	if found := ordinalRegex.FindString(m.Name); found != "" {
		if value, err := strconv.Atoi(found); err == nil {
			return value
		}
	}
	return m.Number
}

// Scored reports whether any alliance carries a non-zero score.
func (m Match) Scored() bool {
	for _, alliance := range m.Alliances {
		if alliance.Score != nil && *alliance.Score != 0 {
			return true
		}
	}
	return false
}

func (m Match) HasTeam(teamID int) bool {
	for _, alliance := range m.Alliances {
		for _, ref := range alliance.Teams {
			if ref.ID == teamID {
				return true
			}
		}
	}
	return false
}

// ScheduledOn reports whether the match is scheduled on the calendar day of
// at, in the time zone of the schedule.
func (m Match) ScheduledOn(at time.Time) bool {
	if m.Scheduled == nil {
		return false
	}
	sy, sm, sd := m.Scheduled.Date()
	ay, am, ad := at.In(m.Scheduled.Location()).Date()
	return sy == ay && sm == am && sd == ad
}

func IntPtr(value int) *int {
	return &value
}
