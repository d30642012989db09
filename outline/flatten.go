package outline

import "math"

// maxFlattenDepth bounds curve subdivision.
const maxFlattenDepth = 16

// Flatten appends to dst a copy of o in which every curve is replaced by
// line segments that stay within tolerance of the curve. MoveTo and Close
// commands are preserved.
func (o *Outline) Flatten(tolerance float64, dst *Outline) {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var pen Point
	for _, seg := range o.Segments {
		switch seg.Op {
		case OpMoveTo, OpLineTo:
			dst.Segments = append(dst.Segments, seg)
			pen = seg.Points[0]
		case OpQuadTo:
			flattenQuad(dst, pen, seg.Points[0], seg.Points[1], tolerance, 0)
			pen = seg.Points[1]
		case OpCubicTo:
			flattenCubic(dst, pen, seg.Points[0], seg.Points[1], seg.Points[2], tolerance, 0)
			pen = seg.Points[2]
		case OpClose:
			dst.Segments = append(dst.Segments, seg)
		}
	}
}

func flattenQuad(dst *Outline, p0, p1, p2 Point, tol float64, depth int) {
	if depth >= maxFlattenDepth || distanceToLine(p1, p0, p2) < tol {
		dst.LineTo(p2.X, p2.Y)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)
	flattenQuad(dst, p0, q0, q2, tol, depth+1)
	flattenQuad(dst, q2, q1, p2, tol, depth+1)
}

func flattenCubic(dst *Outline, p0, p1, p2, p3 Point, tol float64, depth int) {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxFlattenDepth || d < tol {
		dst.LineTo(p3.X, p3.Y)
		return
	}
	// de Casteljau split at t=0.5
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	flattenCubic(dst, p0, q0, r0, s, tol, depth+1)
	flattenCubic(dst, s, r1, q2, p3, tol, depth+1)
}

func lerp(p, q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 < 1e-20 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+abx*t), p.Y-(a.Y+aby*t))
}
