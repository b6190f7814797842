// Package inspect provides the platform signal adapter: OS-specific
// queries for application window titles and browser tab URLs. Every query
// fails soft; a timeout or scripting error is reported as "not running"
// rather than propagated.
package inspect

import (
	"strings"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// Query timeouts. Window title queries are cheap; enumerating browser tabs
// across every window can take noticeably longer.
const (
	windowQueryTimeout  = 3 // seconds
	browserQueryTimeout = 5 // seconds
)

// New creates a platform-appropriate application inspector.
// It returns:
// - a System Events (osascript) inspector on macOS
// - a GNOME Shell (session bus) inspector on Linux
// - a stub inspector reporting nothing running on other platforms.
func New() interfaces.AppInspector {
	return newPlatformInspector()
}

// parseWindowList parses scripted window-query output. The first line is a
// RUNNING / NOT_RUNNING marker; each following non-empty line is one window
// title.
func parseWindowList(output string) interfaces.WindowQuery {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "RUNNING" {
		return interfaces.WindowQuery{}
	}

	q := interfaces.WindowQuery{Running: true}
	for _, line := range lines[1:] {
		if line != "" {
			q.Titles = append(q.Titles, line)
		}
	}
	return q
}

// parseTabList parses scripted tab-query output: one tab per line as
// URL<TAB>title.
func parseTabList(output string) []interfaces.Tab {
	var tabs []interfaces.Tab
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		url, title, _ := strings.Cut(line, "\t")
		if url == "" {
			continue
		}
		tabs = append(tabs, interfaces.Tab{URL: url, Title: title})
	}
	return tabs
}
