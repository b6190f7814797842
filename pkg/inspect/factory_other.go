//go:build !darwin && !linux
// +build !darwin,!linux

package inspect

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// newPlatformInspector creates a stub inspector for unsupported platforms.
func newPlatformInspector() interfaces.AppInspector {
	return NewStubInspector()
}
