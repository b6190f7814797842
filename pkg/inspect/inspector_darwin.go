//go:build darwin
// +build darwin

package inspect

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// DarwinInspector queries application windows and browser tabs through
// System Events scripting (osascript).
type DarwinInspector struct {
	runScript func(ctx context.Context, script string) ([]byte, error)
}

// NewDarwinInspector creates a new macOS application inspector.
func NewDarwinInspector() *DarwinInspector {
	return &DarwinInspector{
		runScript: defaultRunScript,
	}
}

// defaultRunScript executes an AppleScript snippet and returns its output.
func defaultRunScript(ctx context.Context, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	return cmd.Output()
}

// WindowTitles returns the window titles of the named application. A
// scripting error or timeout means the application is not running or not
// automatable; both are normal outcomes, not errors.
func (d *DarwinInspector) WindowTitles(app string) interfaces.WindowQuery {
	script := fmt.Sprintf(`
tell application "System Events"
	if exists (process "%s") then
		set out to "RUNNING"
		repeat with t in (name of every window of process "%s")
			set out to out & linefeed & t
		end repeat
		return out
	else
		return "NOT_RUNNING"
	end if
end tell`, app, app)

	ctx, cancel := context.WithTimeout(context.Background(), windowQueryTimeout*time.Second)
	defer cancel()

	output, err := d.runScript(ctx, script)
	if err != nil {
		return interfaces.WindowQuery{Err: err}
	}
	return parseWindowList(string(output))
}

// tabTitleProperty returns the AppleScript property holding a tab's title.
// Safari calls it "name"; the Chromium-based browsers call it "title".
func tabTitleProperty(browser string) string {
	if browser == "Safari" {
		return "name"
	}
	return "title"
}

// BrowserTabs returns every open tab of the named browser. A browser that
// is not running yields no tabs and no error.
func (d *DarwinInspector) BrowserTabs(browser string) ([]interfaces.Tab, error) {
	script := fmt.Sprintf(`
tell application "%s"
	if it is running then
		set out to ""
		repeat with w in windows
			repeat with t in tabs of w
				set out to out & (URL of t) & tab & (%s of t) & linefeed
			end repeat
		end repeat
		return out
	end if
	return ""
end tell`, browser, tabTitleProperty(browser))

	ctx, cancel := context.WithTimeout(context.Background(), browserQueryTimeout*time.Second)
	defer cancel()

	output, err := d.runScript(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("browser tab query for %s failed: %w", browser, err)
	}
	return parseTabList(string(output)), nil
}
