// Package contour grows or shrinks closed outlines along their boundary
// normal. It is the offset step behind synthetic ("faux") font weight.
package contour

import (
	"math"

	"github.com/gogpu/lcdtext/outline"
)

// DefaultMiterLimit bounds the miter length at a join, in multiples of the
// offset distance. Longer miters are beveled.
const DefaultMiterLimit = 4.0

// coincident is the distance below which two vertices are merged.
const coincident = 1e-9

// Offsetter offsets polygon outlines. It keeps scratch buffers between calls
// and is not safe for concurrent use.
type Offsetter struct {
	// MiterLimit is the join limit; DefaultMiterLimit if zero.
	MiterLimit float64

	poly []outline.Point
}

// Offset appends to dst the contours of src moved by width/2 along their
// outward normal. Positive widths thicken, negative widths thin. src must
// contain only MoveTo, LineTo and Close commands (see outline.Flatten).
// The winding direction is taken from orient and never inferred from the
// contours themselves. Contours with fewer than three distinct vertices are
// dropped. A zero width copies the polygons unchanged.
func (f *Offsetter) Offset(src *outline.Outline, width float64, orient outline.Orientation, dst *outline.Outline) {
	f.poly = f.poly[:0]
	for _, seg := range src.Segments {
		switch seg.Op {
		case outline.OpMoveTo:
			f.flush(width, orient, dst)
			f.add(seg.Points[0])
		case outline.OpLineTo:
			f.add(seg.Points[0])
		case outline.OpClose:
			f.flush(width, orient, dst)
		}
	}
	f.flush(width, orient, dst)
}

func (f *Offsetter) add(p outline.Point) {
	if n := len(f.poly); n > 0 && samePoint(f.poly[n-1], p) {
		return
	}
	f.poly = append(f.poly, p)
}

// flush emits the pending polygon and clears it.
func (f *Offsetter) flush(width float64, orient outline.Orientation, dst *outline.Outline) {
	poly := f.poly
	f.poly = f.poly[:0]
	for len(poly) > 1 && samePoint(poly[0], poly[len(poly)-1]) {
		poly = poly[:len(poly)-1]
	}
	if len(poly) < 3 {
		return
	}

	h := width / 2
	if orient == outline.CounterClockwise {
		h = -h
	}
	limit := f.MiterLimit
	if limit <= 0 {
		limit = DefaultMiterLimit
	}

	n := len(poly)
	first := true
	emit := func(p outline.Point) {
		if first {
			dst.MoveTo(p.X, p.Y)
			first = false
			return
		}
		dst.LineTo(p.X, p.Y)
	}

	for i := 0; i < n; i++ {
		prev := poly[(i+n-1)%n]
		cur := poly[i]
		next := poly[(i+1)%n]
		if h == 0 {
			emit(cur)
			continue
		}
		join(prev, cur, next, h, limit, emit)
	}
	dst.Close()
}

// join emits the offset vertex (or bevel pair) for cur. The offset side is
// the left of the travel direction, which is outward for clockwise contours
// in y-up space.
func join(prev, cur, next outline.Point, h, limit float64, emit func(outline.Point)) {
	n1 := leftNormal(prev, cur)
	n2 := leftNormal(cur, next)

	dot := n1.X*n2.X + n1.Y*n2.Y
	denom := 1 + dot
	// Miter length relative to |h| is sqrt(2/(1+dot)).
	if denom > 1e-12 && 2/denom <= limit*limit {
		emit(outline.Point{
			X: cur.X + (n1.X+n2.X)*h/denom,
			Y: cur.Y + (n1.Y+n2.Y)*h/denom,
		})
		return
	}
	emit(outline.Point{X: cur.X + n1.X*h, Y: cur.Y + n1.Y*h})
	emit(outline.Point{X: cur.X + n2.X*h, Y: cur.Y + n2.Y*h})
}

// leftNormal returns the unit normal to the left of the direction a->b.
func leftNormal(a, b outline.Point) outline.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < coincident {
		return outline.Point{}
	}
	return outline.Point{X: -dy / l, Y: dx / l}
}

func samePoint(a, b outline.Point) bool {
	return math.Abs(a.X-b.X) < coincident && math.Abs(a.Y-b.Y) < coincident
}

// signedArea returns twice the signed area of the polygons in o.
// Positive means counter-clockwise in y-up space.
func signedArea(o *outline.Outline) float64 {
	var area float64
	var start, pen outline.Point
	open := false
	closeRing := func() {
		if open {
			area += pen.X*start.Y - start.X*pen.Y
		}
		open = false
	}
	for _, seg := range o.Segments {
		switch seg.Op {
		case outline.OpMoveTo:
			closeRing()
			start, pen = seg.Points[0], seg.Points[0]
			open = true
		case outline.OpLineTo:
			p := seg.Points[0]
			area += pen.X*p.Y - p.X*pen.Y
			pen = p
		case outline.OpClose:
			closeRing()
		}
	}
	closeRing()
	return area
}
