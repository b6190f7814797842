// Package interfaces defines the narrow contracts between luxmon's core
// logic and its platform collaborators.
package interfaces

// Light is the USB status light actuator. Implementations scale channel
// values by a configured brightness before transmission.
type Light interface {
	SetColor(red, green, blue byte) error
	SetOff() error
	Close() error
}

// WindowQuery is the answer to asking the OS about one application's
// windows. Running distinguishes "application not running" from "running
// with zero windows"; both are normal, non-error outcomes. Err is recorded
// for debug output only; callers treat a failed query as not running.
type WindowQuery struct {
	Running bool
	Titles  []string
	Err     error
}

// Tab is one open browser tab.
type Tab struct {
	URL   string
	Title string
}

// AppInspector queries the OS for application window state.
type AppInspector interface {
	// WindowTitles returns the window titles of the named application.
	WindowTitles(app string) WindowQuery

	// BrowserTabs returns every open tab of the named browser across all
	// of its windows. A browser that is not running yields an empty slice.
	BrowserTabs(browser string) ([]Tab, error)
}

// IdleSource reports user inactivity and screen lock state.
type IdleSource interface {
	IdleSeconds() (float64, error)
	ScreenLocked() (bool, error)
}
