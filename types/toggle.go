package types

// ToggleState is the tri-state answer to the host's "what is this command's
// toggle state" query. Commands without a toggle handler report NotTogglable.
type ToggleState int8

const (
	NotTogglable ToggleState = -1
	ToggleOff    ToggleState = 0
	ToggleOn     ToggleState = 1
)

func (s ToggleState) String() string {
	switch s {
	case NotTogglable:
		return "not-togglable"
	case ToggleOff:
		return "off"
	case ToggleOn:
		return "on"
	default:
		return "invalid"
	}
}
