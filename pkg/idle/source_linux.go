//go:build linux
// +build linux

package idle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// sourceQueryTimeout bounds each idle/lock query issued to the OS.
const sourceQueryTimeout = 2 * time.Second

// busObject is the subset of dbus.BusObject used by the Linux source.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// LinuxIdleSource reads user idle time from the Mutter idle monitor and the
// lock state from the freedesktop screen saver interface, both over the
// session bus.
type LinuxIdleSource struct {
	mu   sync.Mutex
	conn *dbus.Conn

	object func(dest string, path dbus.ObjectPath) (busObject, error)
}

// NewLinuxIdleSource creates a new Linux idle source. The session bus
// connection is established lazily on first query.
func NewLinuxIdleSource() *LinuxIdleSource {
	s := &LinuxIdleSource{}
	s.object = s.sessionObject
	return s
}

func (s *LinuxIdleSource) session() (*dbus.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	s.conn = conn
	return conn, nil
}

// sessionObject resolves a bus object on the lazily-opened session bus.
func (s *LinuxIdleSource) sessionObject(dest string, path dbus.ObjectPath) (busObject, error) {
	conn, err := s.session()
	if err != nil {
		return nil, err
	}
	return conn.Object(dest, path), nil
}

// IdleSeconds returns the elapsed seconds since the last input event.
func (s *LinuxIdleSource) IdleSeconds() (float64, error) {
	obj, err := s.object("org.gnome.Mutter.IdleMonitor", "/org/gnome/Mutter/IdleMonitor/Core")
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sourceQueryTimeout)
	defer cancel()

	var idleMillis uint64
	if err := obj.CallWithContext(ctx, "org.gnome.Mutter.IdleMonitor.GetIdletime", 0).Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("query idle monitor: %w", err)
	}

	return float64(idleMillis) / 1000, nil
}

// ScreenLocked reports whether the screen saver is active.
func (s *LinuxIdleSource) ScreenLocked() (bool, error) {
	obj, err := s.object("org.freedesktop.ScreenSaver", "/org/freedesktop/ScreenSaver")
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sourceQueryTimeout)
	defer cancel()

	var active bool
	if err := obj.CallWithContext(ctx, "org.freedesktop.ScreenSaver.GetActive", 0).Store(&active); err != nil {
		return false, fmt.Errorf("query screen saver: %w", err)
	}

	return active, nil
}

// Close releases the session bus connection.
func (s *LinuxIdleSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
