package idle

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// NewSource creates a platform-appropriate idle source.
// It returns:
// - DarwinIdleSource on macOS systems (ioreg and System Events)
// - LinuxIdleSource on Linux systems (Mutter idle monitor over the session bus)
// - StubSource on other platforms, which always reports activity.
func NewSource() interfaces.IdleSource {
	return newPlatformSource()
}
