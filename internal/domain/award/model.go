package award

import "github.com/riskibarqy/robo-companion/internal/domain/team"

type Award struct {
	ID             int
	EventID        int
	Title          string
	Order          int
	Qualifications []string
	Teams          []team.Ref
	Individuals    []string
}
