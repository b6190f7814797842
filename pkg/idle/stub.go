package idle

// StubSource always reports the user as active and unlocked. It keeps the
// monitor functional on platforms without idle detection support.
type StubSource struct{}

// NewStubSource creates a new stub idle source.
func NewStubSource() *StubSource {
	return &StubSource{}
}

// IdleSeconds reports zero idle time.
func (s *StubSource) IdleSeconds() (float64, error) {
	return 0, nil
}

// ScreenLocked reports the screen as unlocked.
func (s *StubSource) ScreenLocked() (bool, error) {
	return false, nil
}
