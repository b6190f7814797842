// Package testutil provides shared mock implementations for package tests.
package testutil

import (
	"sync"
	"time"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// LightCommand records one command issued to the mock light.
type LightCommand struct {
	Red, Green, Blue byte
	Off              bool
}

// MockLight is a mock implementation of interfaces.Light that records every
// command issued to it.
type MockLight struct {
	mu       sync.Mutex
	commands []LightCommand
	setErr   error
	closed   bool
}

// NewMockLight creates a new mock light.
func NewMockLight() *MockLight {
	return &MockLight{}
}

// SetColor implements the Light interface.
func (m *MockLight) SetColor(red, green, blue byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.commands = append(m.commands, LightCommand{Red: red, Green: green, Blue: blue})
	return nil
}

// SetOff implements the Light interface.
func (m *MockLight) SetOff() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.commands = append(m.commands, LightCommand{Off: true})
	return nil
}

// Close implements the Light interface.
func (m *MockLight) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Commands returns a copy of all recorded commands.
func (m *MockLight) Commands() []LightCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]LightCommand, len(m.commands))
	copy(result, m.commands)
	return result
}

// LastCommand returns the most recent command and whether one exists.
func (m *MockLight) LastCommand() (LightCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.commands) == 0 {
		return LightCommand{}, false
	}
	return m.commands[len(m.commands)-1], true
}

// CommandCount returns how many commands were issued.
func (m *MockLight) CommandCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.commands)
}

// Closed reports whether Close was called.
func (m *MockLight) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetError makes subsequent commands fail with err.
func (m *MockLight) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// MockInspector is a mock implementation of interfaces.AppInspector backed
// by scripted per-application window state.
type MockInspector struct {
	mu      sync.Mutex
	windows map[string]interfaces.WindowQuery
	tabs    map[string][]interfaces.Tab
	tabsErr map[string]error
	queries []string
}

// NewMockInspector creates a new mock inspector with no applications
// running.
func NewMockInspector() *MockInspector {
	return &MockInspector{
		windows: make(map[string]interfaces.WindowQuery),
		tabs:    make(map[string][]interfaces.Tab),
		tabsErr: make(map[string]error),
	}
}

// SetWindows scripts an application as running with the given titles.
func (m *MockInspector) SetWindows(app string, titles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[app] = interfaces.WindowQuery{Running: true, Titles: titles}
}

// SetNotRunning scripts an application as not running.
func (m *MockInspector) SetNotRunning(app string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[app] = interfaces.WindowQuery{}
}

// SetWindowsError scripts a window query failure for an application.
func (m *MockInspector) SetWindowsError(app string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[app] = interfaces.WindowQuery{Err: err}
}

// SetTabs scripts a browser's open tabs.
func (m *MockInspector) SetTabs(browser string, tabs ...interfaces.Tab) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabs[browser] = tabs
}

// SetTabsError scripts a tab query failure for a browser.
func (m *MockInspector) SetTabsError(browser string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabsErr[browser] = err
}

// WindowTitles implements the AppInspector interface.
func (m *MockInspector) WindowTitles(app string) interfaces.WindowQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, app)
	return m.windows[app]
}

// BrowserTabs implements the AppInspector interface.
func (m *MockInspector) BrowserTabs(browser string) ([]interfaces.Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, browser)
	if err := m.tabsErr[browser]; err != nil {
		return nil, err
	}
	return m.tabs[browser], nil
}

// Queries returns the application names queried, in order.
func (m *MockInspector) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.queries))
	copy(result, m.queries)
	return result
}

// MockIdleSource is a mock implementation of interfaces.IdleSource.
type MockIdleSource struct {
	mu          sync.Mutex
	idleSeconds float64
	idleErr     error
	locked      bool
	lockedErr   error
	idleCalls   int
	lockedCalls int
}

// NewMockIdleSource creates a new mock idle source.
func NewMockIdleSource() *MockIdleSource {
	return &MockIdleSource{}
}

// IdleSeconds implements the IdleSource interface.
func (m *MockIdleSource) IdleSeconds() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleCalls++
	if m.idleErr != nil {
		return 0, m.idleErr
	}
	return m.idleSeconds, nil
}

// ScreenLocked implements the IdleSource interface.
func (m *MockIdleSource) ScreenLocked() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockedCalls++
	if m.lockedErr != nil {
		return false, m.lockedErr
	}
	return m.locked, nil
}

// SetIdleSeconds sets the idle reading.
func (m *MockIdleSource) SetIdleSeconds(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleSeconds = seconds
}

// SetIdleError makes idle queries fail with err.
func (m *MockIdleSource) SetIdleError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleErr = err
}

// SetLocked sets the lock state.
func (m *MockIdleSource) SetLocked(locked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = locked
}

// SetLockedError makes lock queries fail with err.
func (m *MockIdleSource) SetLockedError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockedErr = err
}

// IdleCallCount returns how many live idle queries were issued.
func (m *MockIdleSource) IdleCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.idleCalls
}

// LockedCallCount returns how many lock queries were issued.
func (m *MockIdleSource) LockedCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockedCalls
}

// ReporterEvent records one reporter callback.
type ReporterEvent struct {
	Kind     string // "on-call", "call-ended", "idle", "off", "available"
	Platform string
	Duration time.Duration
	Reported bool
	Reason   string
}

// MockReporter is a mock implementation of the monitor's Reporter that
// records every transition event.
type MockReporter struct {
	mu     sync.Mutex
	events []ReporterEvent
}

// NewMockReporter creates a new mock reporter.
func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

// OnCall implements the Reporter interface.
func (m *MockReporter) OnCall(platform string) {
	m.record(ReporterEvent{Kind: "on-call", Platform: platform})
}

// CallEnded implements the Reporter interface.
func (m *MockReporter) CallEnded(platform string, duration time.Duration, report bool) {
	m.record(ReporterEvent{Kind: "call-ended", Platform: platform, Duration: duration, Reported: report})
}

// Idle implements the Reporter interface.
func (m *MockReporter) Idle(idleFor time.Duration) {
	m.record(ReporterEvent{Kind: "idle", Duration: idleFor})
}

// Off implements the Reporter interface.
func (m *MockReporter) Off(reason string) {
	m.record(ReporterEvent{Kind: "off", Reason: reason})
}

// Available implements the Reporter interface.
func (m *MockReporter) Available() {
	m.record(ReporterEvent{Kind: "available"})
}

func (m *MockReporter) record(e ReporterEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Events returns a copy of all recorded events.
func (m *MockReporter) Events() []ReporterEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ReporterEvent, len(m.events))
	copy(result, m.events)
	return result
}

// LastEvent returns the most recent event and whether one exists.
func (m *MockReporter) LastEvent() (ReporterEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return ReporterEvent{}, false
	}
	return m.events[len(m.events)-1], true
}
