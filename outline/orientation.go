package outline

// Orientation is the winding direction of outer contours in y-up space.
// Holes wind the opposite way.
type Orientation int

const (
	// Clockwise outer contours (TrueType glyf convention).
	Clockwise Orientation = iota

	// CounterClockwise outer contours (PostScript/CFF convention).
	CounterClockwise
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return "Unknown"
	}
}
