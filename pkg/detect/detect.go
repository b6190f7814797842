// Package detect decides whether the user is currently in a voice or video
// call. It runs a fixed, ordered sequence of per-application and browser
// detectors and short-circuits on the first positive match; the order
// encodes priority.
package detect

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// Outcome is the tri-state result of one detector. QueryFailed is always
// folded to a negative by the aggregator but kept distinct so debug output
// can tell "app not running" apart from "query timed out".
type Outcome int

const (
	Negative Outcome = iota
	Positive
	QueryFailed
)

// String returns a short label for debug output.
func (o Outcome) String() string {
	switch o {
	case Positive:
		return "positive"
	case QueryFailed:
		return "query failed"
	default:
		return "negative"
	}
}

// Result is one detector's verdict. Platform is set on a positive result;
// Detail carries extra context for debug output, such as the matched tab
// title or the reason for a negative.
type Result struct {
	Outcome  Outcome
	Platform string
	Detail   string
}

// Detector determines whether one specific application or browser
// currently indicates an active call.
type Detector interface {
	Name() string
	Check(ins interfaces.AppInspector) Result
}

// Snapshot is the aggregated call-presence reading for one tick.
type Snapshot struct {
	OnCall   bool
	Platform string
}

// Aggregator runs detectors in order and returns the first positive match.
type Aggregator struct {
	detectors []Detector
	debugf    func(format string, args ...any)
}

// NewAggregator creates an aggregator over the given detectors. debugf may
// be nil to discard detector traces.
func NewAggregator(detectors []Detector, debugf func(format string, args ...any)) *Aggregator {
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Aggregator{
		detectors: detectors,
		debugf:    debugf,
	}
}

// Detect runs every detector in priority order, stopping at the first
// positive result. Detector failures never propagate; they count as "not in
// a call" for that detector.
func (a *Aggregator) Detect(ins interfaces.AppInspector) Snapshot {
	for _, d := range a.detectors {
		res := d.Check(ins)
		switch res.Outcome {
		case Positive:
			if res.Detail != "" {
				a.debugf("%s: call detected on %s (%s)", d.Name(), res.Platform, res.Detail)
			} else {
				a.debugf("%s: call detected on %s", d.Name(), res.Platform)
			}
			return Snapshot{OnCall: true, Platform: res.Platform}
		case QueryFailed:
			a.debugf("%s: query failed, treating as no call (%s)", d.Name(), res.Detail)
		default:
			if res.Detail != "" {
				a.debugf("%s: no call (%s)", d.Name(), res.Detail)
			} else {
				a.debugf("%s: no call", d.Name())
			}
		}
	}
	return Snapshot{}
}

// DefaultDetectors returns the canonical detector sequence: Slack huddles,
// Zoom, Microsoft Teams, Telegram, WhatsApp, Signal, then browser meeting
// tabs. Detectors named in disabled are skipped.
func DefaultDetectors(browsers, disabled []string) []Detector {
	all := []Detector{
		&SlackDetector{},
		&ZoomDetector{},
		&TeamsDetector{},
		NewTelegramDetector(),
		NewWhatsAppDetector(),
		NewSignalDetector(),
		NewBrowserDetector(browsers),
	}

	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	detectors := make([]Detector, 0, len(all))
	for _, d := range all {
		if !skip[d.Name()] {
			detectors = append(detectors, d)
		}
	}
	return detectors
}
