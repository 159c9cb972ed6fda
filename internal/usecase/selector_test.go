package usecase_test

import (
	"errors"
	"testing"

	"github.com/riskibarqy/robo-companion/internal/domain/program"
	usecasemock "github.com/riskibarqy/robo-companion/internal/mocks/usecase"
	"github.com/riskibarqy/robo-companion/internal/usecase"
	"github.com/stretchr/testify/mock"
)

var (
	v5rc = program.Descriptor{ID: 1, Code: "V5RC", Family: program.FamilyA, Grades: []program.Grade{program.GradeMiddle, program.GradeHigh}, SupportsSecondaryRanking: true}
	viqr = program.Descriptor{ID: 41, Code: "VIQRC", Family: program.FamilyA, Grades: []program.Grade{program.GradeElementary, program.GradeMiddle}}
	ftc  = program.Descriptor{ID: 1000, Code: "FTC", Family: program.FamilyB}
)

func newFamilyAdapters(t *testing.T) (*usecasemock.Adapter, *usecasemock.Adapter) {
	t.Helper()
	robotEvents := usecasemock.NewAdapter(t)
	robotEvents.On("Family").Return(program.FamilyA)
	ftcEvents := usecasemock.NewAdapter(t)
	ftcEvents.On("Family").Return(program.FamilyB)
	return robotEvents, ftcEvents
}

func TestUpstreamSelector_SelectByFamily(t *testing.T) {
	t.Parallel()

	robotEvents, ftcEvents := newFamilyAdapters(t)
	selector := usecase.NewUpstreamSelector(nil, robotEvents, ftcEvents)

	got, err := selector.Select(v5rc)
	if err != nil {
		t.Fatalf("select v5rc: %v", err)
	}
	if got != robotEvents {
		t.Fatalf("expected family A adapter for v5rc")
	}

	got, err = selector.Select(ftc)
	if err != nil {
		t.Fatalf("select ftc: %v", err)
	}
	if got != ftcEvents {
		t.Fatalf("expected family B adapter for ftc")
	}
}

func TestUpstreamSelector_RepeatedSelectSkipsClassification(t *testing.T) {
	t.Parallel()

	robotEvents, ftcEvents := newFamilyAdapters(t)
	selector := usecase.NewUpstreamSelector(nil, robotEvents, ftcEvents)

	first, err := selector.Select(viqr)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	second, err := selector.Select(viqr)
	if err != nil {
		t.Fatalf("select again: %v", err)
	}
	if first != second {
		t.Fatalf("expected same adapter for same program")
	}
	robotEvents.AssertNumberOfCalls(t, "Family", 1)
}

func TestUpstreamSelector_UnknownFamilyFailsLoudly(t *testing.T) {
	t.Parallel()

	robotEvents, ftcEvents := newFamilyAdapters(t)
	selector := usecase.NewUpstreamSelector(nil, robotEvents, ftcEvents)

	_, err := selector.Select(program.Descriptor{ID: 99, Family: "C"})
	if !errors.Is(err, usecase.ErrUnknownProgramFamily) {
		t.Fatalf("expected ErrUnknownProgramFamily, got %v", err)
	}

	err = selector.SetCurrentProgram(program.Descriptor{ID: 99})
	if !errors.Is(err, usecase.ErrUnknownProgramFamily) {
		t.Fatalf("expected ErrUnknownProgramFamily from SetCurrentProgram, got %v", err)
	}
}

func TestUpstreamSelector_MissingAdapter(t *testing.T) {
	t.Parallel()

	robotEvents := usecasemock.NewAdapter(t)
	robotEvents.On("Family").Return(program.FamilyA)
	selector := usecase.NewUpstreamSelector(nil, robotEvents)

	_, err := selector.Select(ftc)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestUpstreamSelector_SetCurrentProgramPropagates(t *testing.T) {
	t.Parallel()

	robotEvents, ftcEvents := newFamilyAdapters(t)
	robotEvents.On("SetCurrentProgram", mock.MatchedBy(func(p program.Descriptor) bool { return p.ID == ftc.ID })).Return().Once()
	ftcEvents.On("SetCurrentProgram", mock.MatchedBy(func(p program.Descriptor) bool { return p.ID == ftc.ID })).Return().Once()
	selector := usecase.NewUpstreamSelector(nil, robotEvents, ftcEvents)

	bound, err := selector.Select(v5rc)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := selector.SetCurrentProgram(ftc); err != nil {
		t.Fatalf("set current program: %v", err)
	}
	if selector.CurrentProgram().ID != ftc.ID {
		t.Fatalf("unexpected current program: %+v", selector.CurrentProgram())
	}
	if bound != robotEvents {
		t.Fatalf("adapter bound before the program change must be unaffected")
	}

	again, err := selector.Select(v5rc)
	if err != nil {
		t.Fatalf("select after change: %v", err)
	}
	if again != robotEvents {
		t.Fatalf("expected v5rc to keep routing to family A")
	}
}
