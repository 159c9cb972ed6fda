package program

import (
	"slices"
	"strings"
)

// Family tags which upstream service family serves a program.
type Family string

const (
	// FamilyA is served by the RobotEvents API.
	FamilyA Family = "A"
	// FamilyB is served by the FTC Events API.
	FamilyB Family = "B"
)

func ParseFamily(value string) Family {
	return Family(strings.ToUpper(strings.TrimSpace(value)))
}

func (f Family) Known() bool {
	return f == FamilyA || f == FamilyB
}

// Grade is a competitor age bracket.
type Grade string

const (
	GradeElementary Grade = "Elementary School"
	GradeMiddle     Grade = "Middle School"
	GradeHigh       Grade = "High School"
	GradeCollege    Grade = "College"
)

// Descriptor identifies one competition program. Descriptors are loaded from
// the static catalog and never mutated afterwards.
type Descriptor struct {
	ID                       int
	Code                     string
	Name                     string
	Family                   Family
	Grades                   []Grade
	SupportsSecondaryRanking bool
	LimitedMode              bool
}

func (d Descriptor) IsZero() bool {
	return d.ID == 0 && d.Family == ""
}

func (d Descriptor) HasGrade(grade Grade) bool {
	return slices.Contains(d.Grades, grade)
}

// Equal reports whether both descriptors carry identical values.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.ID == other.ID &&
		d.Code == other.Code &&
		d.Name == other.Name &&
		d.Family == other.Family &&
		d.SupportsSecondaryRanking == other.SupportsSecondaryRanking &&
		d.LimitedMode == other.LimitedMode &&
		slices.Equal(d.Grades, other.Grades)
}
