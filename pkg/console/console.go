// Package console renders luxmon's user-facing status lines and the
// startup banner.
package console

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	redDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).SetString("●")
	greenDot = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).SetString("●")
	blueDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).SetString("●")
	offDot   = lipgloss.NewStyle().Faint(true).SetString("●")

	headerStyle = lipgloss.NewStyle().Bold(true)
	debugStyle  = lipgloss.NewStyle().Faint(true)
)

// Printer writes timestamped status lines. Debug traces are written to a
// separate writer and suppressed unless debug mode is on.
type Printer struct {
	out      io.Writer
	debugOut io.Writer
	debug    bool
	now      func() time.Time
}

// NewPrinter creates a printer writing status lines to out and debug traces
// to debugOut.
func NewPrinter(out, debugOut io.Writer, debug bool) *Printer {
	return &Printer{
		out:      out,
		debugOut: debugOut,
		debug:    debug,
		now:      time.Now,
	}
}

// SetClock overrides the printer's clock. Used by tests.
func (p *Printer) SetClock(now func() time.Time) {
	p.now = now
}

func (p *Printer) line(dot lipgloss.Style, format string, args ...any) {
	fmt.Fprintf(p.out, "[%s] %s %s\n", p.now().Format("15:04:05"), dot, fmt.Sprintf(format, args...))
}

// Banner prints the startup banner with the color legend.
func (p *Printer) Banner(brightness int, debug bool) {
	fmt.Fprintln(p.out, headerStyle.Render("luxmon - presence indicator"))
	fmt.Fprintln(p.out, "Status colors:")
	fmt.Fprintf(p.out, "  %s red    - on a call (do not disturb)\n", redDot)
	fmt.Fprintf(p.out, "  %s green  - available\n", greenDot)
	fmt.Fprintf(p.out, "  %s blue   - idle/away\n", blueDot)
	fmt.Fprintf(p.out, "  %s off    - long idle or screen locked\n", offDot)
	fmt.Fprintf(p.out, "Brightness: %d%%\n", brightness)
	if debug {
		fmt.Fprintln(p.out, "Debug mode enabled")
	}
	fmt.Fprintln(p.out, "Press Ctrl+C to stop")
	fmt.Fprintln(p.out)
}

// OnCall reports entry into the on-call state.
func (p *Printer) OnCall(platform string) {
	if platform != "" {
		p.line(redDot, "On call on %s - DO NOT DISTURB", platform)
		return
	}
	p.line(redDot, "On call - DO NOT DISTURB")
}

// CallEnded reports the return to available after a call. The duration is
// included only when report is true; calls below the reportable minimum
// still transition but are dropped from the summary.
func (p *Printer) CallEnded(platform string, duration time.Duration, report bool) {
	suffix := ""
	if platform != "" {
		suffix = fmt.Sprintf(" [%s]", platform)
	}
	if report {
		p.line(greenDot, "Available%s (call ended - duration: %s)", suffix, FormatDuration(duration))
		return
	}
	p.line(greenDot, "Available%s (call ended)", suffix)
}

// Idle reports entry into the idle state.
func (p *Printer) Idle(idleFor time.Duration) {
	p.line(blueDot, "Idle/Away (%d min inactive)", int(idleFor.Minutes()))
}

// Off reports entry into the off state.
func (p *Printer) Off(reason string) {
	p.line(offDot, "Off (%s)", reason)
}

// Available reports the available state.
func (p *Printer) Available() {
	p.line(greenDot, "Available")
}

// Debugf writes a detector or monitor trace when debug mode is on.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.debug {
		return
	}
	fmt.Fprintln(p.debugOut, debugStyle.Render("  [DEBUG] "+fmt.Sprintf(format, args...)))
}

// FormatDuration renders a call duration as "1h 4m", "4m 12s" or "42s".
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
