package team

import "github.com/riskibarqy/robo-companion/internal/domain/program"

// Team is one registered competitor.
type Team struct {
	ID           int
	Number       string
	Name         string
	RobotName    string
	Organization string
	City         string
	Region       string
	Country      string
	ProgramID    int
	Grade        program.Grade
	Registered   bool
}

// Ref is the slim team reference carried inside matches, awards and rankings.
type Ref struct {
	ID     int
	Number string
	Name   string
}
