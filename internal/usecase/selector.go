package usecase

import (
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

// UpstreamSelector routes a program to the adapter of its upstream family.
// The last resolved pair is cached so repeated calls for the same program
// skip classification.
type UpstreamSelector struct {
	adapters map[program.Family]Adapter
	logger   *logging.Logger

	mu       sync.Mutex
	resolved program.Descriptor
	adapter  Adapter
	current  program.Descriptor
}

func NewUpstreamSelector(logger *logging.Logger, adapters ...Adapter) *UpstreamSelector {
	byFamily := make(map[program.Family]Adapter, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		byFamily[adapter.Family()] = adapter
	}
	return &UpstreamSelector{
		adapters: byFamily,
		logger:   logger.Named("upstream_selector"),
	}
}

// Select returns the adapter for p. The returned value is not affected by
// later calls to Select or SetCurrentProgram.
func (s *UpstreamSelector) Select(p program.Descriptor) (Adapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.adapter != nil && s.resolved.Equal(p) {
		return s.adapter, nil
	}

	adapter, err := s.classify(p)
	if err != nil {
		return nil, err
	}
	s.resolved = p
	s.adapter = adapter
	return adapter, nil
}

// SetCurrentProgram records p as the active program and forwards it to every
// adapter for default filter values.
func (s *UpstreamSelector) SetCurrentProgram(p program.Descriptor) error {
	if _, err := s.classify(p); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	for _, adapter := range s.Adapters() {
		adapter.SetCurrentProgram(p)
	}
	s.logger.Info("current program changed", "program_id", p.ID, "program_code", p.Code)
	return nil
}

func (s *UpstreamSelector) CurrentProgram() program.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Adapters returns the registered adapters ordered by family.
func (s *UpstreamSelector) Adapters() []Adapter {
	out := make([]Adapter, 0, len(s.adapters))
	for _, family := range program.Known() {
		if adapter, ok := s.adapters[family]; ok {
			out = append(out, adapter)
		}
	}
	return out
}

func (s *UpstreamSelector) classify(p program.Descriptor) (Adapter, error) {
	switch p.Family {
	case program.FamilyA, program.FamilyB:
	default:
		return nil, crerr.Wrapf(ErrUnknownProgramFamily, "program %d has family %q", p.ID, p.Family)
	}

	adapter, ok := s.adapters[p.Family]
	if !ok {
		return nil, crerr.Wrapf(ErrDependencyUnavailable, "no adapter registered for family %q", p.Family)
	}
	return adapter, nil
}
