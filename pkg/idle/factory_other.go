//go:build !darwin && !linux
// +build !darwin,!linux

package idle

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// newPlatformSource creates a stub source for unsupported platforms.
func newPlatformSource() interfaces.IdleSource {
	return NewStubSource()
}
