package inspect

import (
	"github.com/luxmon/luxmon/pkg/interfaces"
)

// StubInspector reports every application as not running. It keeps the
// monitor functional on platforms without window inspection support.
type StubInspector struct{}

// NewStubInspector creates a new stub inspector.
func NewStubInspector() *StubInspector {
	return &StubInspector{}
}

// WindowTitles reports the application as not running.
func (s *StubInspector) WindowTitles(app string) interfaces.WindowQuery {
	return interfaces.WindowQuery{}
}

// BrowserTabs reports no open tabs.
func (s *StubInspector) BrowserTabs(browser string) ([]interfaces.Tab, error) {
	return nil, nil
}
