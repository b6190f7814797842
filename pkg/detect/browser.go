package detect

import (
	"fmt"
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// urlRule maps a URL substring to a meeting platform label. The rules are
// a flat table checked in order; each entry stands on its own.
type urlRule struct {
	substr   string
	platform string
}

var urlRules = []urlRule{
	{"meet.google.com", "Google Meet"},
	{"teams.microsoft.com", "Teams"},
	{"zoom.us/j/", "Zoom"},
	{"slack.com/huddle", "Slack"},
}

// browserShortNames maps application names to display names for the
// platform label.
var browserShortNames = map[string]string{
	"Google Chrome":  "Chrome",
	"Microsoft Edge": "Edge",
}

// maxTabTitleLen bounds the tab title carried in the debug detail.
const maxTabTitleLen = 50

// BrowserDetector scans every open tab of a fixed list of browsers for
// known meeting URLs. The first matching tab short-circuits with its
// platform label. A browser that is not running contributes nothing.
type BrowserDetector struct {
	browsers []string
}

// NewBrowserDetector creates a browser tab detector over the given browser
// application names.
func NewBrowserDetector(browsers []string) *BrowserDetector {
	return &BrowserDetector{browsers: browsers}
}

// Name returns the detector identifier.
func (d *BrowserDetector) Name() string { return "browser" }

// Check scans all tabs of all configured browsers for meeting URLs.
func (d *BrowserDetector) Check(ins interfaces.AppInspector) Result {
	var lastErr error

	for _, browser := range d.browsers {
		tabs, err := ins.BrowserTabs(browser)
		if err != nil {
			lastErr = err
			continue
		}

		for _, tab := range tabs {
			for _, rule := range urlRules {
				if strings.Contains(tab.URL, rule.substr) {
					return Result{
						Outcome:  Positive,
						Platform: fmt.Sprintf("%s (%s)", shortName(browser), rule.platform),
						Detail:   truncateTitle(tab.Title),
					}
				}
			}
		}
	}

	if lastErr != nil {
		return Result{Outcome: QueryFailed, Detail: lastErr.Error()}
	}
	return Result{}
}

// shortName returns the display name for a browser application.
func shortName(browser string) string {
	if short, ok := browserShortNames[browser]; ok {
		return short
	}
	return browser
}

// truncateTitle shortens a tab title for diagnostics.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTabTitleLen {
		return title
	}
	return string(runes[:maxTabTitleLen]) + "..."
}
