// Package gamma provides the coverage-to-intensity lookup table applied
// before blending.
//
// Coverage produced by the scan converter is linear in area. Displays are
// not, so each coverage byte is mapped through a power curve before it is
// used as a blend weight. The table is monotonic non-decreasing with fixed
// endpoints, dir[0] = 0 and dir[255] = 255.
package gamma

import "math"

// Default is the reference gamma.
const Default = 1.8

// Table is a 256-entry power-law lookup table.
type Table struct {
	gamma float64
	dir   [256]uint8
}

// New creates a table for gamma g. Values <= 0 or NaN are treated as 1.
func New(g float64) *Table {
	t := &Table{}
	t.build(sanitize(g))
	return t
}

// Gamma returns the exponent the table was built with.
func (t *Table) Gamma() float64 { return t.gamma }

// Dir maps a coverage byte to an intensity byte.
func (t *Table) Dir(v uint8) uint8 { return t.dir[v] }

// At evaluates the curve for a coverage fraction in [0, 1] without the
// lookup. Values outside the range are clamped.
func (t *Table) At(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return math.Pow(v, t.gamma)
}

// SetGamma rebuilds the table if g differs from the current exponent.
// It reports whether the table changed.
func (t *Table) SetGamma(g float64) bool {
	g = sanitize(g)
	if g == t.gamma {
		return false
	}
	t.build(g)
	return true
}

// Entries returns a copy of the lookup table.
func (t *Table) Entries() [256]uint8 { return t.dir }

func (t *Table) build(g float64) {
	t.gamma = g
	for i := range t.dir {
		v := math.Pow(float64(i)/255.0, g)*255.0 + 0.5
		if v > 255 {
			v = 255
		}
		//nolint:gosec // G115: v is clamped to [0,255] range
		t.dir[i] = uint8(v)
	}
}

func sanitize(g float64) float64 {
	if !(g > 0) || math.IsInf(g, 0) {
		return 1
	}
	return g
}
