//go:build darwin
// +build darwin

package idle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// sourceQueryTimeout bounds each idle/lock query issued to the OS.
const sourceQueryTimeout = 2 * time.Second

// DarwinIdleSource reads user idle time from IOHIDSystem via ioreg and the
// screen lock state from the System Events screen saver preferences.
type DarwinIdleSource struct {
	cmdExecutor func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewDarwinIdleSource creates a new Darwin (macOS) idle source.
func NewDarwinIdleSource() *DarwinIdleSource {
	return &DarwinIdleSource{
		cmdExecutor: defaultDarwinCmdExecutor,
	}
}

// defaultDarwinCmdExecutor executes a command and returns its output.
func defaultDarwinCmdExecutor(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// IdleSeconds returns the elapsed seconds since the last input event.
func (s *DarwinIdleSource) IdleSeconds() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sourceQueryTimeout)
	defer cancel()

	output, err := s.cmdExecutor(ctx, "ioreg", "-c", "IOHIDSystem", "-d", "4")
	if err != nil {
		return 0, fmt.Errorf("failed to execute ioreg: %w", err)
	}

	idleNanos, err := parseHIDIdleTime(output)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HIDIdleTime: %w", err)
	}

	return float64(idleNanos) / 1e9, nil
}

// parseHIDIdleTime parses the HIDIdleTime value from ioreg output.
func parseHIDIdleTime(output []byte) (int64, error) {
	lines := bytes.Split(output, []byte("\n"))
	for _, line := range lines {
		lineStr := string(bytes.TrimSpace(line))
		if !strings.Contains(lineStr, "HIDIdleTime") {
			continue
		}

		// Format: "HIDIdleTime" = 123456789
		parts := strings.Split(lineStr, "=")
		if len(parts) != 2 {
			continue
		}

		valueStr := strings.TrimSpace(parts[1])
		valueStr = strings.Trim(valueStr, "\"")
		valueStr = strings.TrimSpace(valueStr)

		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse idle time value: %w", err)
		}

		return value, nil
	}

	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}

// ScreenLocked reports whether the screen saver or lock screen is active.
func (s *DarwinIdleSource) ScreenLocked() (bool, error) {
	const script = `tell application "System Events" to get running of screen saver preferences`

	ctx, cancel := context.WithTimeout(context.Background(), sourceQueryTimeout)
	defer cancel()

	output, err := s.cmdExecutor(ctx, "osascript", "-e", script)
	if err != nil {
		return false, fmt.Errorf("failed to query screen lock state: %w", err)
	}

	return strings.Contains(strings.ToLower(string(output)), "true"), nil
}
