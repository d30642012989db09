package contour

import (
	"math"

	"github.com/gogpu/lcdtext/outline"
)

// StageName is the pipeline name of WeightStage.
const StageName = "faux-weight"

// DefaultZoom is the vertical stretch applied around the offset so that the
// weight change lands almost entirely on vertical stems.
const DefaultZoom = 100.0

// DefaultTolerance is the curve flattening tolerance in stretched space.
const DefaultTolerance = 0.1

// WeightStage is an outline.Stage that thickens or thins glyphs
// horizontally. It stretches y by Zoom, offsets the contours by Width and
// shrinks y back, so horizontal strokes keep their thickness.
type WeightStage struct {
	// Width is the full offset width in outline units. Positive is bolder.
	Width float64

	// Orientation of outer contours. Never auto-detected.
	Orientation outline.Orientation

	// Zoom is the vertical stretch factor; DefaultZoom if zero.
	Zoom float64

	// Tolerance is the flattening tolerance; DefaultTolerance if zero.
	Tolerance float64

	flat   outline.Outline
	off    Offsetter
	result outline.Outline
}

// NewWeightStage creates a weight stage for the given width and winding.
func NewWeightStage(width float64, orient outline.Orientation) *WeightStage {
	return &WeightStage{Width: width, Orientation: orient}
}

// Name implements outline.Stage.
func (s *WeightStage) Name() string { return StageName }

// Apply implements outline.Stage.
func (s *WeightStage) Apply(work *outline.Outline) {
	if s.Width == 0 || work.IsEmpty() {
		return
	}
	zoom := s.Zoom
	if zoom == 0 {
		zoom = DefaultZoom
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	work.Transform(outline.Scale(1, zoom))
	s.flat.Reset()
	work.Flatten(tol, &s.flat)

	s.result.Reset()
	s.off.Offset(&s.flat, s.Width, s.Orientation, &s.result)

	s.result.Transform(outline.Scale(1, 1/zoom))
	work.CopyFrom(&s.result)
}

// WidthFor returns the offset width for a faux weight value at the given
// pixel size and horizontal oversampling. Weights of magnitude below 0.05
// are treated as zero.
func WidthFor(fauxWeight, size float64, subpixels int) float64 {
	if math.Abs(fauxWeight) < 0.05 {
		return 0
	}
	return fauxWeight * size * float64(subpixels) / 15
}
