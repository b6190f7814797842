// Package monitor owns the presence state machine: it polls call and idle
// signals on a fixed-period tick and drives the status light through state
// transitions.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/luxmon/luxmon/pkg/detect"
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// CallDetector aggregates per-application call detection.
type CallDetector interface {
	Detect(ins interfaces.AppInspector) detect.Snapshot
}

// IdleTracker supplies cached idle readings and live lock state.
type IdleTracker interface {
	IdleSeconds(force bool) (float64, bool)
	ScreenLocked() bool
}

// Reporter receives user-facing presence transition events.
type Reporter interface {
	OnCall(platform string)
	CallEnded(platform string, duration time.Duration, report bool)
	Idle(idleFor time.Duration)
	Off(reason string)
	Available()
}

// Options configures a Monitor.
type Options struct {
	TickInterval time.Duration
	// TicksPerIdleRefresh is how many ticks elapse between forced idle and
	// lock queries.
	TicksPerIdleRefresh int
	IdleThreshold       time.Duration
	OffThreshold        time.Duration
	MinCallDuration     time.Duration
}

// Monitor evaluates presence once per tick and issues at most one light
// command per tick. It is single-threaded; all state is owned by the tick
// loop.
type Monitor struct {
	light     interfaces.Light
	inspector interfaces.AppInspector
	calls     CallDetector
	tracker   IdleTracker
	reporter  Reporter
	opts      Options

	now    func() time.Time
	debugf func(format string, args ...any)

	mode      Mode
	callStart time.Time
	platform  string
	tick      int
}

// New creates a monitor. debugf may be nil to discard trace output.
func New(light interfaces.Light, inspector interfaces.AppInspector, calls CallDetector, tracker IdleTracker, reporter Reporter, opts Options, debugf func(format string, args ...any)) *Monitor {
	if opts.TicksPerIdleRefresh < 1 {
		opts.TicksPerIdleRefresh = 1
	}
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Monitor{
		light:     light,
		inspector: inspector,
		calls:     calls,
		tracker:   tracker,
		reporter:  reporter,
		opts:      opts,
		now:       time.Now,
		debugf:    debugf,
		mode:      ModeAvailable,
	}
}

// Mode returns the currently displayed presence state.
func (m *Monitor) Mode() Mode {
	return m.mode
}

// Start puts the monitor into its initial state: available, light green.
// Cold start assumes activity regardless of the actual idle time.
func (m *Monitor) Start() error {
	m.mode = ModeAvailable
	if err := m.light.SetColor(0, 255, 0); err != nil {
		return fmt.Errorf("failed to set initial light state: %w", err)
	}
	m.reporter.Available()
	return nil
}

// Tick runs one evaluation: call detection always, a fresh idle and lock
// query every TicksPerIdleRefresh ticks, then the transition rules in
// priority order. Call detection strictly dominates idle state.
func (m *Monitor) Tick() error {
	refresh := m.tick%m.opts.TicksPerIdleRefresh == 0
	m.tick++

	snap := m.calls.Detect(m.inspector)

	idleSeconds, fresh := m.tracker.IdleSeconds(refresh)
	locked := false
	if refresh {
		locked = m.tracker.ScreenLocked()
	}

	// Priority 1: an active call overrides everything.
	if snap.OnCall {
		if m.mode == ModeOnCall {
			return nil
		}
		if err := m.light.SetColor(255, 0, 0); err != nil {
			return err
		}
		m.callStart = m.now()
		m.platform = snap.Platform
		m.mode = ModeOnCall
		m.reporter.OnCall(snap.Platform)
		return nil
	}

	// Priority 2: the call just ended.
	if m.mode == ModeOnCall {
		if err := m.light.SetColor(0, 255, 0); err != nil {
			return err
		}
		duration := m.now().Sub(m.callStart)
		m.reporter.CallEnded(m.platform, duration, duration >= m.opts.MinCallDuration)
		m.callStart = time.Time{}
		m.platform = ""
		m.mode = ModeAvailable
		return nil
	}

	// Priority 3: idle and lock thresholds, evaluated only on a fresh
	// reading. A stale tick leaves the displayed state unchanged rather
	// than acting on cached data.
	if !refresh || !fresh {
		m.debugf("stale idle tick, leaving mode %s unchanged", m.mode)
		return nil
	}

	switch {
	case locked || idleSeconds >= m.opts.OffThreshold.Seconds():
		if m.mode == ModeOff {
			return nil
		}
		if err := m.light.SetOff(); err != nil {
			return err
		}
		m.mode = ModeOff
		m.reporter.Off(offReason(locked, idleSeconds))

	case idleSeconds >= m.opts.IdleThreshold.Seconds():
		if m.mode == ModeIdle {
			return nil
		}
		if err := m.light.SetColor(0, 0, 255); err != nil {
			return err
		}
		m.mode = ModeIdle
		m.reporter.Idle(time.Duration(idleSeconds) * time.Second)

	default:
		if m.mode != ModeIdle && m.mode != ModeOff {
			return nil
		}
		if err := m.light.SetColor(0, 255, 0); err != nil {
			return err
		}
		m.mode = ModeAvailable
		m.reporter.Available()
	}

	return nil
}

// offReason describes why the light went off.
func offReason(locked bool, idleSeconds float64) string {
	if locked {
		return "screen locked"
	}
	return fmt.Sprintf("%d min idle", int(idleSeconds/60))
}

// Run drives the tick loop until the context is canceled, then shuts the
// light down. Cleanup runs unconditionally on the cancellation path.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(m.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.Shutdown()
		case <-ticker.C:
			if err := m.Tick(); err != nil {
				m.debugf("tick error: %v", err)
			}
		}
	}
}

// Shutdown forces the off state and releases the light. This is the only
// transition not driven by sensor input.
func (m *Monitor) Shutdown() error {
	m.mode = ModeOff
	if err := m.light.SetOff(); err != nil {
		m.debugf("failed to turn light off during shutdown: %v", err)
	}
	return m.light.Close()
}
