//go:build linux
// +build linux

package idle

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// newPlatformSource creates a Linux-specific idle source.
func newPlatformSource() interfaces.IdleSource {
	return NewLinuxIdleSource()
}
