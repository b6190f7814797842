package detect

import (
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// titleSeparator joins segments in Microsoft Teams window titles. A meeting
// window carries exactly one separator ("Meeting Name | Microsoft Teams");
// the tabbed shell view chains three or more segments.
const titleSeparator = " | "

// TeamsDetector detects active Microsoft Teams calls and meetings from
// window titles.
type TeamsDetector struct{}

// Name returns the detector identifier.
func (d *TeamsDetector) Name() string { return "teams" }

// Check inspects Microsoft Teams windows for an active call.
func (d *TeamsDetector) Check(ins interfaces.AppInspector) Result {
	q := ins.WindowTitles("Microsoft Teams")
	if q.Err != nil {
		return Result{Outcome: QueryFailed, Detail: q.Err.Error()}
	}
	if !q.Running {
		return Result{Detail: "not running"}
	}

	for _, title := range q.Titles {
		if isTeamsCallWindow(title) {
			return Result{Outcome: Positive, Platform: "Microsoft Teams", Detail: title}
		}
	}
	return Result{}
}

// isTeamsCallWindow applies the Teams title heuristics.
func isTeamsCallWindow(title string) bool {
	if strings.Contains(title, "Meeting") || strings.Contains(title, " | Call") || strings.Contains(title, "Calling") {
		return true
	}

	// Titles shaped "Meeting Name | Microsoft Teams" are likely meeting
	// windows, but the Activity/Chat/Calendar views share the suffix. A
	// lingering post-call tab view chains more segments, so only a title
	// with a single separator counts as a candidate meeting window.
	if strings.Contains(title, " | Microsoft Teams") {
		if strings.Contains(title, "Activity") ||
			strings.Contains(title, "Chat") ||
			strings.Contains(title, "Calendar") ||
			strings.Contains(title, "Teams |") {
			return false
		}
		if strings.Count(title, titleSeparator) == 1 {
			return true
		}
	}

	return false
}
