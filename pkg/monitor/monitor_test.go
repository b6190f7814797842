package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/luxmon/luxmon/pkg/detect"
	"github.com/luxmon/luxmon/pkg/idle"
	"github.com/luxmon/luxmon/pkg/interfaces"
	"github.com/luxmon/luxmon/pkg/testutil"
)

// fakeCalls is a scripted call detector.
type fakeCalls struct {
	snap detect.Snapshot
}

func (f *fakeCalls) Detect(ins interfaces.AppInspector) detect.Snapshot {
	return f.snap
}

// fakeTracker is a scripted idle tracker.
type fakeTracker struct {
	idle   float64
	stale  bool
	locked bool
}

func (f *fakeTracker) IdleSeconds(force bool) (float64, bool) {
	if f.stale {
		return f.idle, false
	}
	return f.idle, force
}

func (f *fakeTracker) ScreenLocked() bool {
	return f.locked
}

type fixture struct {
	monitor  *Monitor
	light    *testutil.MockLight
	calls    *fakeCalls
	tracker  *fakeTracker
	reporter *testutil.MockReporter
	now      time.Time
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		light:    testutil.NewMockLight(),
		calls:    &fakeCalls{},
		tracker:  &fakeTracker{},
		reporter: testutil.NewMockReporter(),
		now:      time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
	}
	f.monitor = New(f.light, testutil.NewMockInspector(), f.calls, f.tracker, f.reporter, opts, nil)
	f.monitor.now = func() time.Time { return f.now }
	return f
}

func defaultOptions() Options {
	return Options{
		TickInterval:        3 * time.Second,
		TicksPerIdleRefresh: 1,
		IdleThreshold:       30 * time.Minute,
		OffThreshold:        60 * time.Minute,
		MinCallDuration:     60 * time.Second,
	}
}

func (f *fixture) tick(t *testing.T) {
	t.Helper()
	if err := f.monitor.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}
}

func validModes() map[Mode]bool {
	return map[Mode]bool{
		ModeAvailable: true,
		ModeOnCall:    true,
		ModeIdle:      true,
		ModeOff:       true,
	}
}

func TestMonitorStart(t *testing.T) {
	f := newFixture(defaultOptions())

	if err := f.monitor.Start(); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	if f.monitor.Mode() != ModeAvailable {
		t.Errorf("Mode() = %v, want available", f.monitor.Mode())
	}

	cmd, ok := f.light.LastCommand()
	if !ok || cmd.Green != 255 || cmd.Red != 0 || cmd.Blue != 0 {
		t.Errorf("startup light command = %+v, want green", cmd)
	}
}

func TestCallEntryIsIdempotent(t *testing.T) {
	f := newFixture(defaultOptions())
	f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Zoom"}

	f.tick(t)
	if f.monitor.Mode() != ModeOnCall {
		t.Fatalf("Mode() = %v, want on-call", f.monitor.Mode())
	}

	commands := f.light.CommandCount()
	cmd, _ := f.light.LastCommand()
	if cmd.Red != 255 {
		t.Errorf("on-call light command = %+v, want red", cmd)
	}

	// A second tick with identical inputs must issue no further commands.
	f.tick(t)
	if f.light.CommandCount() != commands {
		t.Errorf("redundant light command on unchanged on-call mode: %d -> %d", commands, f.light.CommandCount())
	}
	if events := f.reporter.Events(); len(events) != 1 {
		t.Errorf("reporter events = %d, want 1", len(events))
	}
}

func TestCallDominatesIdleAndLock(t *testing.T) {
	f := newFixture(defaultOptions())
	f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Microsoft Teams"}
	f.tracker.idle = 7200 // past the off threshold
	f.tracker.locked = true

	f.tick(t)

	if f.monitor.Mode() != ModeOnCall {
		t.Errorf("Mode() = %v, want on-call to dominate idle and lock", f.monitor.Mode())
	}
	cmd, _ := f.light.LastCommand()
	if cmd.Red != 255 || cmd.Off {
		t.Errorf("light command = %+v, want red", cmd)
	}
}

func TestCallDurationReportBoundary(t *testing.T) {
	tests := []struct {
		name       string
		duration   time.Duration
		wantReport bool
	}{
		{"short call dropped from summary", 30 * time.Second, false},
		{"one second under the threshold", 59 * time.Second, false},
		{"exactly the threshold is reported", 60 * time.Second, true},
		{"long call reported", 61*time.Minute + 40*time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(defaultOptions())

			f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Zoom"}
			f.tick(t)

			f.now = f.now.Add(tt.duration)
			f.calls.snap = detect.Snapshot{}
			f.tick(t)

			if f.monitor.Mode() != ModeAvailable {
				t.Fatalf("Mode() = %v, want available after call end", f.monitor.Mode())
			}

			event, ok := f.reporter.LastEvent()
			if !ok || event.Kind != "call-ended" {
				t.Fatalf("last event = %+v, want call-ended", event)
			}
			if event.Reported != tt.wantReport {
				t.Errorf("duration reported = %v, want %v (duration %v)", event.Reported, tt.wantReport, tt.duration)
			}
			if event.Duration != tt.duration {
				t.Errorf("event duration = %v, want %v", event.Duration, tt.duration)
			}
			if event.Platform != "Zoom" {
				t.Errorf("event platform = %q, want Zoom", event.Platform)
			}

			// The transition itself always happens: the light goes green.
			cmd, _ := f.light.LastCommand()
			if cmd.Green != 255 {
				t.Errorf("light command after call end = %+v, want green", cmd)
			}
		})
	}
}

func TestIdleThresholdTransitions(t *testing.T) {
	f := newFixture(defaultOptions())

	// idle=1850s crosses the 1800s idle threshold.
	f.tracker.idle = 1850
	f.tick(t)
	if f.monitor.Mode() != ModeIdle {
		t.Fatalf("Mode() = %v, want idle at 1850s", f.monitor.Mode())
	}
	cmd, _ := f.light.LastCommand()
	if cmd.Blue != 255 {
		t.Errorf("light command = %+v, want blue", cmd)
	}

	// Unchanged idle state issues no further commands.
	commands := f.light.CommandCount()
	f.tick(t)
	if f.light.CommandCount() != commands {
		t.Error("redundant light command on unchanged idle mode")
	}

	// idle=3650s crosses the 3600s off threshold.
	f.tracker.idle = 3650
	f.tick(t)
	if f.monitor.Mode() != ModeOff {
		t.Fatalf("Mode() = %v, want off at 3650s", f.monitor.Mode())
	}
	cmd, _ = f.light.LastCommand()
	if !cmd.Off {
		t.Errorf("light command = %+v, want off", cmd)
	}

	// Activity resumes.
	f.tracker.idle = 3
	f.tick(t)
	if f.monitor.Mode() != ModeAvailable {
		t.Fatalf("Mode() = %v, want available after activity", f.monitor.Mode())
	}
	cmd, _ = f.light.LastCommand()
	if cmd.Green != 255 {
		t.Errorf("light command = %+v, want green", cmd)
	}
}

func TestScreenLockShortCircuitsIdleCheck(t *testing.T) {
	f := newFixture(defaultOptions())
	f.tracker.idle = 5
	f.tracker.locked = true

	f.tick(t)

	if f.monitor.Mode() != ModeOff {
		t.Errorf("Mode() = %v, want off when the screen is locked", f.monitor.Mode())
	}
	event, _ := f.reporter.LastEvent()
	if event.Kind != "off" || event.Reason != "screen locked" {
		t.Errorf("event = %+v, want off with screen locked reason", event)
	}
}

func TestStaleTickLeavesIdleStateUnchanged(t *testing.T) {
	opts := defaultOptions()
	opts.TicksPerIdleRefresh = 2
	f := newFixture(opts)

	// Tick 0 is a refresh tick: active user, stays available.
	f.tracker.idle = 3
	f.tick(t)
	if f.monitor.Mode() != ModeAvailable {
		t.Fatalf("Mode() = %v, want available", f.monitor.Mode())
	}

	// Tick 1 is stale: even a reading past the off threshold must not act.
	f.tracker.idle = 3650
	f.tick(t)
	if f.monitor.Mode() != ModeAvailable {
		t.Errorf("Mode() = %v after stale tick, want unchanged available", f.monitor.Mode())
	}

	// Tick 2 refreshes and acts.
	f.tick(t)
	if f.monitor.Mode() != ModeOff {
		t.Errorf("Mode() = %v after fresh tick, want off", f.monitor.Mode())
	}
}

func TestFailedRefreshSuppressesIdleTransitions(t *testing.T) {
	f := newFixture(defaultOptions())
	f.tracker.idle = 3650
	f.tracker.stale = true // live query failed, cache fallback

	f.tick(t)

	if f.monitor.Mode() != ModeAvailable {
		t.Errorf("Mode() = %v, want available when idle data is stale", f.monitor.Mode())
	}
}

func TestModeInvariantAcrossSequences(t *testing.T) {
	f := newFixture(defaultOptions())
	valid := validModes()

	steps := []func(){
		func() { f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Zoom"} },
		func() { f.tracker.locked = true },
		func() { f.calls.snap = detect.Snapshot{} },
		func() { f.tracker.locked = false; f.tracker.idle = 2000 },
		func() { f.tracker.idle = 4000 },
		func() { f.tracker.idle = 0 },
		func() { f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Signal"} },
	}

	for i, step := range steps {
		step()
		f.tick(t)
		if !valid[f.monitor.Mode()] {
			t.Fatalf("step %d: Mode() = %v, not a valid mode", i, f.monitor.Mode())
		}
	}
}

func TestShutdownForcesOffAndReleasesLight(t *testing.T) {
	f := newFixture(defaultOptions())
	f.calls.snap = detect.Snapshot{OnCall: true, Platform: "Zoom"}
	f.tick(t)

	if err := f.monitor.Shutdown(); err != nil {
		t.Fatalf("Shutdown() unexpected error: %v", err)
	}

	if f.monitor.Mode() != ModeOff {
		t.Errorf("Mode() = %v, want off after shutdown", f.monitor.Mode())
	}
	cmd, _ := f.light.LastCommand()
	if !cmd.Off {
		t.Errorf("last light command = %+v, want off", cmd)
	}
	if !f.light.Closed() {
		t.Error("Shutdown() did not release the light device")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	opts := defaultOptions()
	opts.TickInterval = 5 * time.Millisecond
	f := newFixture(opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.monitor.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancellation")
	}

	if !f.light.Closed() {
		t.Error("Run() did not release the light on shutdown")
	}
	cmd, _ := f.light.LastCommand()
	if !cmd.Off {
		t.Errorf("last light command = %+v, want off", cmd)
	}
}

// End-to-end scenario: nothing running, no meeting tabs, active user.
func TestScenarioEverythingQuiet(t *testing.T) {
	ins := testutil.NewMockInspector()
	source := testutil.NewMockIdleSource()
	light := testutil.NewMockLight()
	reporter := testutil.NewMockReporter()

	aggregator := detect.NewAggregator(detect.DefaultDetectors([]string{"Google Chrome"}, nil), nil)
	tracker := idle.NewTracker(source, 30*time.Second)

	m := New(light, ins, aggregator, tracker, reporter, defaultOptions(), nil)

	if err := m.Start(); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}

	if m.Mode() != ModeAvailable {
		t.Errorf("Mode() = %v, want available", m.Mode())
	}
	cmd, _ := light.LastCommand()
	if cmd.Green != 255 {
		t.Errorf("light command = %+v, want green", cmd)
	}
}

// End-to-end scenario: rising inactivity walks the pipeline through idle
// and then off.
func TestScenarioIdleProgression(t *testing.T) {
	ins := testutil.NewMockInspector()
	source := testutil.NewMockIdleSource()
	light := testutil.NewMockLight()
	reporter := testutil.NewMockReporter()

	aggregator := detect.NewAggregator(detect.DefaultDetectors([]string{"Google Chrome"}, nil), nil)
	tracker := idle.NewTracker(source, 30*time.Second)

	m := New(light, ins, aggregator, tracker, reporter, defaultOptions(), nil)

	source.SetIdleSeconds(1850)
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}
	if m.Mode() != ModeIdle {
		t.Fatalf("Mode() = %v, want idle at 1850s", m.Mode())
	}
	cmd, _ := light.LastCommand()
	if cmd.Blue != 255 {
		t.Errorf("light command = %+v, want blue", cmd)
	}

	source.SetIdleSeconds(3650)
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}
	if m.Mode() != ModeOff {
		t.Fatalf("Mode() = %v, want off at 3650s", m.Mode())
	}
	cmd, _ = light.LastCommand()
	if !cmd.Off {
		t.Errorf("light command = %+v, want off", cmd)
	}
}

// End-to-end scenario: a locked screen turns the light off immediately,
// regardless of how recently the user was active.
func TestScenarioLockedScreen(t *testing.T) {
	ins := testutil.NewMockInspector()
	source := testutil.NewMockIdleSource()
	source.SetIdleSeconds(5)
	source.SetLocked(true)
	light := testutil.NewMockLight()
	reporter := testutil.NewMockReporter()

	aggregator := detect.NewAggregator(detect.DefaultDetectors([]string{"Google Chrome"}, nil), nil)
	tracker := idle.NewTracker(source, 30*time.Second)

	m := New(light, ins, aggregator, tracker, reporter, defaultOptions(), nil)

	if err := m.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}

	if m.Mode() != ModeOff {
		t.Fatalf("Mode() = %v, want off when locked", m.Mode())
	}
	event, _ := reporter.LastEvent()
	if event.Kind != "off" || event.Reason != "screen locked" {
		t.Errorf("event = %+v, want off with screen locked reason", event)
	}
	cmd, _ := light.LastCommand()
	if !cmd.Off {
		t.Errorf("light command = %+v, want off", cmd)
	}
}

// End-to-end scenario: Telegram with two untitled windows triggers the
// weak window-count signal and the full pipeline lands on-call.
func TestScenarioTelegramWindowCount(t *testing.T) {
	ins := testutil.NewMockInspector()
	ins.SetWindows("Telegram", "Telegram", "Alice")
	source := testutil.NewMockIdleSource()
	light := testutil.NewMockLight()
	reporter := testutil.NewMockReporter()

	aggregator := detect.NewAggregator(detect.DefaultDetectors([]string{"Google Chrome"}, nil), nil)
	tracker := idle.NewTracker(source, 30*time.Second)

	m := New(light, ins, aggregator, tracker, reporter, defaultOptions(), nil)

	if err := m.Tick(); err != nil {
		t.Fatalf("Tick() unexpected error: %v", err)
	}

	if m.Mode() != ModeOnCall {
		t.Fatalf("Mode() = %v, want on-call", m.Mode())
	}
	event, _ := reporter.LastEvent()
	if event.Platform != "Telegram" {
		t.Errorf("platform = %q, want Telegram", event.Platform)
	}
	cmd, _ := light.LastCommand()
	if cmd.Red != 255 {
		t.Errorf("light command = %+v, want red", cmd)
	}
}
