//go:build linux
// +build linux

package inspect

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// newPlatformInspector creates a Linux-specific application inspector.
func newPlatformInspector() interfaces.AppInspector {
	return NewLinuxInspector()
}
