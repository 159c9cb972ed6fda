package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

// FailureTransition is published when an adapter enters or leaves failure
// state.
type FailureTransition struct {
	Adapter   string
	InFailure bool
	At        time.Time
}

type FailureGauge interface {
	SetUpstreamFailure(adapter string, inFailure bool)
}

type FailureMonitorConfig struct {
	Interval time.Duration
	Logger   *logging.Logger
	Gauge    FailureGauge
	OnChange func(FailureTransition)
	Now      func() time.Time
	Adapters []Adapter
}

// FailureMonitor polls adapters on a fixed interval. Polling uses
// IsInFailureState so the one-time notification stays with whoever calls
// GetFailureInfo.
type FailureMonitor struct {
	interval time.Duration
	logger   *logging.Logger
	gauge    FailureGauge
	onChange func(FailureTransition)
	now      func() time.Time
	adapters []Adapter

	mu   sync.Mutex
	last map[string]bool
}

func NewFailureMonitor(cfg FailureMonitorConfig) *FailureMonitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &FailureMonitor{
		interval: cfg.Interval,
		logger:   cfg.Logger.Named("failure_monitor"),
		gauge:    cfg.Gauge,
		onChange: cfg.OnChange,
		now:      cfg.Now,
		adapters: cfg.Adapters,
		last:     make(map[string]bool, len(cfg.Adapters)),
	}
}

// Start runs the check loop until ctx is cancelled or the returned stop func
// is called. stop blocks until the loop has exited and is safe to call more
// than once.
func (m *FailureMonitor) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

// Check polls every adapter once and returns the transitions it observed.
func (m *FailureMonitor) Check(ctx context.Context) []FailureTransition {
	transitions := make([]FailureTransition, 0)
	for _, adapter := range m.adapters {
		name := adapter.Name()
		failing := adapter.IsInFailureState()

		m.mu.Lock()
		previous, seen := m.last[name]
		m.last[name] = failing
		m.mu.Unlock()

		if m.gauge != nil {
			m.gauge.SetUpstreamFailure(name, failing)
		}
		if seen && previous == failing {
			continue
		}
		if !seen && !failing {
			continue
		}

		transition := FailureTransition{Adapter: name, InFailure: failing, At: m.now()}
		transitions = append(transitions, transition)
		if failing {
			m.logger.WarnContext(ctx, "upstream adapter entered failure state", "adapter", name)
		} else {
			m.logger.InfoContext(ctx, "upstream adapter recovered", "adapter", name)
		}
		if m.onChange != nil {
			m.onChange(transition)
		}
	}
	return transitions
}

// Status reads the failure info of every adapter. Reading acknowledges the
// pending notification of each adapter.
func (m *FailureMonitor) Status() map[string]FailureInfo {
	out := make(map[string]FailureInfo, len(m.adapters))
	for _, adapter := range m.adapters {
		out[adapter.Name()] = adapter.GetFailureInfo()
	}
	return out
}
