//go:build darwin
// +build darwin

package inspect

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// newPlatformInspector creates a Darwin-specific application inspector.
func newPlatformInspector() interfaces.AppInspector {
	return NewDarwinInspector()
}
