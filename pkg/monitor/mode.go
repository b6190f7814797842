package monitor

// Mode is the displayed presence state. Exactly one mode is active at any
// time.
type Mode int

const (
	ModeAvailable Mode = iota
	ModeOnCall
	ModeIdle
	ModeOff
)

// String returns the mode's display name.
func (m Mode) String() string {
	switch m {
	case ModeOnCall:
		return "on-call"
	case ModeIdle:
		return "idle"
	case ModeOff:
		return "off"
	default:
		return "available"
	}
}
