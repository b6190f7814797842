//go:build linux
// +build linux

package inspect

import (
	"context"
	"fmt"
	"testing"

	"github.com/godbus/dbus/v5"
)

// fakeBusObject scripts one bus reply and records how it was called.
type fakeBusObject struct {
	t      *testing.T
	body   []interface{}
	err    error
	method string
}

func (f *fakeBusObject) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	if _, ok := ctx.Deadline(); !ok {
		f.t.Error("bus call issued without a deadline")
	}
	f.method = method
	return &dbus.Call{Body: f.body, Err: f.err}
}

func newTestInspector(obj *fakeBusObject) *LinuxInspector {
	l := &LinuxInspector{}
	l.object = func(dest string, path dbus.ObjectPath) (busObject, error) {
		return obj, nil
	}
	return l
}

func TestLinuxInspectorWindowTitles(t *testing.T) {
	windows := `[{"title":"Zoom Meeting","wmClass":"zoom"},{"title":"general - Slack","wmClass":"Slack"}]`
	obj := &fakeBusObject{t: t, body: []interface{}{true, windows}}
	l := newTestInspector(obj)

	q := l.WindowTitles("Slack")
	if q.Err != nil {
		t.Fatalf("WindowTitles() unexpected error: %v", q.Err)
	}
	if !q.Running {
		t.Error("WindowTitles() Running = false, want true")
	}
	if len(q.Titles) != 1 || q.Titles[0] != "general - Slack" {
		t.Errorf("WindowTitles() titles = %v", q.Titles)
	}
	if obj.method != "org.gnome.Shell.Eval" {
		t.Errorf("bus method = %q, want org.gnome.Shell.Eval", obj.method)
	}
}

func TestLinuxInspectorWMClassAliases(t *testing.T) {
	tests := []struct {
		name    string
		app     string
		wmClass string
	}{
		{"zoom process name maps to zoom class", "zoom.us", "zoom"},
		{"chrome space maps to hyphenated class", "Google Chrome", "Google-chrome"},
		{"teams maps to bare class", "Microsoft Teams", "teams"},
		{"edge maps to hyphenated class", "Microsoft Edge", "microsoft-edge"},
		{"unaliased name matches directly", "Telegram", "TelegramDesktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := fmt.Sprintf(`[{"title":"w","wmClass":"%s"}]`, tt.wmClass)
			l := newTestInspector(&fakeBusObject{t: t, body: []interface{}{true, windows}})

			q := l.WindowTitles(tt.app)
			if !q.Running {
				t.Errorf("WindowTitles(%q) did not match WM_CLASS %q", tt.app, tt.wmClass)
			}
		})
	}
}

func TestLinuxInspectorDoubleEncodedResult(t *testing.T) {
	// Eval sometimes wraps its JSON result in an extra string layer.
	double := `"[{\"title\":\"w\",\"wmClass\":\"Slack\"}]"`
	l := newTestInspector(&fakeBusObject{t: t, body: []interface{}{true, double}})

	q := l.WindowTitles("Slack")
	if q.Err != nil {
		t.Fatalf("WindowTitles() unexpected error: %v", q.Err)
	}
	if !q.Running {
		t.Error("WindowTitles() Running = false, want true")
	}
}

func TestLinuxInspectorEvalFailure(t *testing.T) {
	l := newTestInspector(&fakeBusObject{t: t, body: []interface{}{false, "eval disabled"}})

	q := l.WindowTitles("Slack")
	if q.Err == nil {
		t.Error("WindowTitles() expected Err when eval fails")
	}
	if q.Running {
		t.Error("WindowTitles() Running = true after eval failure")
	}
}

func TestLinuxInspectorBusError(t *testing.T) {
	l := &LinuxInspector{}
	l.object = func(dest string, path dbus.ObjectPath) (busObject, error) {
		return nil, fmt.Errorf("no session bus")
	}

	q := l.WindowTitles("Slack")
	if q.Err == nil {
		t.Error("WindowTitles() expected Err without a session bus")
	}
}

func TestLinuxInspectorBrowserTabsUnavailable(t *testing.T) {
	l := newTestInspector(&fakeBusObject{t: t})

	if _, err := l.BrowserTabs("Google Chrome"); err == nil {
		t.Error("BrowserTabs() expected error on linux")
	}
}
