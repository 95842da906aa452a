// File: api/schemas/input.go
package schemas

// MouseButton defines the button held down in an action sample.
type MouseButton string

const (
	ButtonNone MouseButton = "none"
	// ButtonLeft is the primary key.
	ButtonLeft MouseButton = "left"
	// ButtonRight is the secondary key.
	ButtonRight MouseButton = "right"
)

// Pressed reports whether any button is held.
func (b MouseButton) Pressed() bool {
	return b == ButtonLeft || b == ButtonRight
}

// ActionSample is one timestamped cursor position with the set of pressed buttons.
// A generated sequence of samples is ordered by non-decreasing Time.
type ActionSample struct {
	Time     float64     `json:"time"`
	Position Vector2D    `json:"position"`
	Button   MouseButton `json:"button"`
}
