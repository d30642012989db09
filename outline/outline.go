// Package outline holds glyph outlines and the ordered stage pipeline that
// derives synthetic styles from a single source outline.
//
// Coordinates follow the font convention: y grows upward. Outlines handed
// out by a font provider are treated as immutable; a Pipeline copies the
// source into its own working outline before any stage runs.
package outline

import "math"

// Point is a 2D point in outline space.
type Point struct {
	X, Y float64
}

// Op is the type of a path command.
type Op uint8

const (
	// OpMoveTo starts a new contour at Points[0].
	OpMoveTo Op = iota

	// OpLineTo draws a straight line to Points[0].
	OpLineTo

	// OpQuadTo draws a quadratic Bézier: Points[0] is the control, Points[1] the target.
	OpQuadTo

	// OpCubicTo draws a cubic Bézier: Points[0], Points[1] are controls, Points[2] the target.
	OpCubicTo

	// OpClose closes the current contour back to its start point.
	OpClose
)

// String returns a string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// PointCount returns how many entries of Segment.Points the operation uses.
func (op Op) PointCount() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 0
	}
}

// Segment is a single path command.
type Segment struct {
	Op     Op
	Points [3]Point
}

// End returns the pen position after the segment, or false for OpClose.
func (s Segment) End() (Point, bool) {
	n := s.Op.PointCount()
	if n == 0 {
		return Point{}, false
	}
	return s.Points[n-1], true
}

// Outline is a sequence of path commands.
// The zero value is an empty outline ready to use.
type Outline struct {
	Segments []Segment
}

// MoveTo starts a new contour.
func (o *Outline) MoveTo(x, y float64) {
	o.Segments = append(o.Segments, Segment{Op: OpMoveTo, Points: [3]Point{{x, y}}})
}

// LineTo appends a line segment.
func (o *Outline) LineTo(x, y float64) {
	o.Segments = append(o.Segments, Segment{Op: OpLineTo, Points: [3]Point{{x, y}}})
}

// QuadTo appends a quadratic Bézier segment.
func (o *Outline) QuadTo(cx, cy, x, y float64) {
	o.Segments = append(o.Segments, Segment{Op: OpQuadTo, Points: [3]Point{{cx, cy}, {x, y}}})
}

// CubicTo appends a cubic Bézier segment.
func (o *Outline) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	o.Segments = append(o.Segments, Segment{Op: OpCubicTo, Points: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Close closes the current contour.
func (o *Outline) Close() {
	o.Segments = append(o.Segments, Segment{Op: OpClose})
}

// IsEmpty returns true if the outline draws nothing.
func (o *Outline) IsEmpty() bool {
	if o == nil {
		return true
	}
	for _, s := range o.Segments {
		if s.Op != OpMoveTo && s.Op != OpClose {
			return false
		}
	}
	return true
}

// Len returns the number of segments.
func (o *Outline) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Segments)
}

// Reset empties the outline, keeping the allocated storage.
func (o *Outline) Reset() {
	o.Segments = o.Segments[:0]
}

// Clone creates a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	clone := &Outline{Segments: make([]Segment, len(o.Segments))}
	copy(clone.Segments, o.Segments)
	return clone
}

// CopyFrom replaces the contents of o with a copy of src, reusing storage.
func (o *Outline) CopyFrom(src *Outline) {
	o.Segments = o.Segments[:0]
	if src != nil {
		o.Segments = append(o.Segments, src.Segments...)
	}
}

// Transform applies m to every point in place.
func (o *Outline) Transform(m Transform) {
	for i := range o.Segments {
		seg := &o.Segments[i]
		for j := 0; j < seg.Op.PointCount(); j++ {
			seg.Points[j] = m.TransformPoint(seg.Points[j])
		}
	}
}

// Bounds returns the bounding box of all points, control points included.
// ok is false when the outline has no points.
func (o *Outline) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	if o == nil {
		return 0, 0, 0, 0, false
	}
	for _, seg := range o.Segments {
		for j := 0; j < seg.Op.PointCount(); j++ {
			p := seg.Points[j]
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			ok = true
		}
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}
