package detect

import (
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// ZoomDetector detects active Zoom meetings from window titles. The main
// "Zoom Workplace" shell window is not a meeting; meeting windows carry the
// meeting name or a participant count.
type ZoomDetector struct{}

// Name returns the detector identifier.
func (d *ZoomDetector) Name() string { return "zoom" }

// Check inspects Zoom's windows for an active meeting.
func (d *ZoomDetector) Check(ins interfaces.AppInspector) Result {
	q := ins.WindowTitles("zoom.us")
	if q.Err != nil {
		return Result{Outcome: QueryFailed, Detail: q.Err.Error()}
	}
	if !q.Running {
		return Result{Detail: "not running"}
	}

	for _, title := range q.Titles {
		if isZoomMeetingWindow(title) {
			return Result{Outcome: Positive, Platform: "Zoom", Detail: title}
		}
	}
	return Result{}
}

// isZoomMeetingWindow applies the Zoom title heuristics.
func isZoomMeetingWindow(title string) bool {
	if strings.Contains(title, "Zoom Meeting") {
		return true
	}

	// Participant-named meetings, e.g. "John Doe's Zoom Meeting".
	if strings.Contains(title, "Meeting") && !strings.Contains(title, "Zoom Workplace") {
		return true
	}

	// Participant count in title, e.g. "Zoom (3)".
	if strings.HasPrefix(title, "Zoom") && strings.Contains(title, "(") && !strings.Contains(title, "Workplace") {
		return true
	}

	return false
}
