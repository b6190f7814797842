//go:build linux
// +build linux

package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// busObject is the subset of dbus.BusObject used by the Linux adapters.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// LinuxInspector queries application windows through the GNOME Shell Eval
// interface on the session bus. Browser tab URLs are not exposed by the
// compositor, so browser detection contributes nothing on Linux.
type LinuxInspector struct {
	mu   sync.Mutex
	conn *dbus.Conn

	object func(dest string, path dbus.ObjectPath) (busObject, error)
}

// NewLinuxInspector creates a new Linux application inspector. The session
// bus connection is established lazily on first query so that startup does
// not fail on headless systems.
func NewLinuxInspector() *LinuxInspector {
	l := &LinuxInspector{}
	l.object = l.sessionObject
	return l
}

// shellWindow mirrors the JSON emitted by the Eval snippet.
type shellWindow struct {
	Title   string `json:"title"`
	WMClass string `json:"wmClass"`
}

// windowListScript enumerates every window with its title and WM_CLASS.
const windowListScript = `JSON.stringify(global.get_window_actors().map(function(a) {
	var w = a.meta_window;
	return {title: w.get_title() || '', wmClass: w.get_wm_class() || ''};
}))`

// wmClassAliases maps the macOS-centric process names the detectors use to
// the WM_CLASS tokens the same applications carry on Linux.
var wmClassAliases = map[string]string{
	"zoom.us":         "zoom",
	"Microsoft Teams": "teams",
	"Google Chrome":   "google-chrome",
	"Microsoft Edge":  "microsoft-edge",
}

func (l *LinuxInspector) session() (*dbus.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return l.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	l.conn = conn
	return conn, nil
}

// sessionObject resolves a bus object on the lazily-opened session bus.
func (l *LinuxInspector) sessionObject(dest string, path dbus.ObjectPath) (busObject, error) {
	conn, err := l.session()
	if err != nil {
		return nil, err
	}
	return conn.Object(dest, path), nil
}

// listWindows evaluates the window list script in GNOME Shell.
func (l *LinuxInspector) listWindows() ([]shellWindow, error) {
	obj, err := l.object("org.gnome.Shell", "/org/gnome/Shell")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), windowQueryTimeout*time.Second)
	defer cancel()

	var success bool
	var result string
	if err := obj.CallWithContext(ctx, "org.gnome.Shell.Eval", 0, windowListScript).Store(&success, &result); err != nil {
		return nil, fmt.Errorf("gnome shell eval: %w", err)
	}
	if !success {
		return nil, fmt.Errorf("gnome shell eval failed: %s", result)
	}

	// Eval may double-encode its JSON result.
	var jsonStr string
	if err := json.Unmarshal([]byte(result), &jsonStr); err != nil {
		jsonStr = result
	}

	var windows []shellWindow
	if err := json.Unmarshal([]byte(jsonStr), &windows); err != nil {
		return nil, fmt.Errorf("parse window list: %w", err)
	}
	return windows, nil
}

// WindowTitles returns the titles of windows whose WM_CLASS matches the
// application name, translated through the per-platform alias table.
func (l *LinuxInspector) WindowTitles(app string) interfaces.WindowQuery {
	windows, err := l.listWindows()
	if err != nil {
		return interfaces.WindowQuery{Err: err}
	}

	want := strings.ToLower(app)
	if alias, ok := wmClassAliases[app]; ok {
		want = alias
	}

	q := interfaces.WindowQuery{}
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.WMClass), want) {
			q.Running = true
			if w.Title != "" {
				q.Titles = append(q.Titles, w.Title)
			}
		}
	}
	return q
}

// BrowserTabs reports that tab inspection is unavailable. The aggregator
// folds this into a negative detection.
func (l *LinuxInspector) BrowserTabs(browser string) ([]interfaces.Tab, error) {
	return nil, fmt.Errorf("browser tab inspection is not available on linux")
}

// Close releases the session bus connection.
func (l *LinuxInspector) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
}
