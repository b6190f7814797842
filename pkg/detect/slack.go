package detect

import (
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// SlackDetector detects active Slack huddles from window titles. A window
// named for a huddle counts; the "Start huddle" affordance does not.
type SlackDetector struct{}

// Name returns the detector identifier.
func (d *SlackDetector) Name() string { return "slack" }

// Check inspects Slack's windows for an active huddle.
func (d *SlackDetector) Check(ins interfaces.AppInspector) Result {
	q := ins.WindowTitles("Slack")
	if q.Err != nil {
		return Result{Outcome: QueryFailed, Detail: q.Err.Error()}
	}
	if !q.Running {
		return Result{Detail: "not running"}
	}

	for _, title := range q.Titles {
		if strings.Contains(title, "Huddle") && !strings.Contains(title, "Start") {
			return Result{Outcome: Positive, Platform: "Slack Huddle"}
		}
	}
	return Result{}
}
