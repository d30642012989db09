package lcd

import (
	"math"
	"strings"
)

// Subpixels is the number of coverage samples per output pixel.
const Subpixels = 3

// ChannelOrder is the physical left-to-right order of color subpixels.
type ChannelOrder int

const (
	// RGB panels have red on the left.
	RGB ChannelOrder = iota

	// BGR panels have blue on the left.
	BGR
)

// String returns the string representation of the order.
func (o ChannelOrder) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	default:
		return "Unknown"
	}
}

// ParseChannelOrder parses "rgb" or "bgr" (any case). ok is false otherwise.
func ParseChannelOrder(s string) (ChannelOrder, bool) {
	switch strings.ToLower(s) {
	case "rgb":
		return RGB, true
	case "bgr":
		return BGR, true
	}
	return RGB, false
}

const (
	fixedShift = 16
	fixedOne   = 1 << fixedShift
	fixedHalf  = fixedOne >> 1
)

// Filter applies a kernel to rows of oversampled coverage. Weights are kept
// in 16.16 fixed point. A Filter is immutable after construction.
type Filter struct {
	kernel Kernel
	order  ChannelOrder
	taps   [5]int32
	// offsets[c] is the sample offset from the pixel center for channel c.
	offsets [3]int
}

// NewFilter creates a filter for kernel k and the given panel order.
//
// The kernel is used as given. When it is normalized, the fixed-point taps
// are adjusted to sum to exactly one so that flat fields are reproduced
// without rounding drift.
func NewFilter(k Kernel, order ChannelOrder) *Filter {
	f := &Filter{kernel: k, order: order}
	for i, w := range k.Taps() {
		f.taps[i] = toFixed(w)
	}
	if math.Abs(k.Sum()-1) <= SumTolerance {
		f.taps[2] = fixedOne - 2*f.taps[1] - 2*f.taps[0]
	}
	if order == BGR {
		f.offsets = [3]int{1, 0, -1}
	} else {
		f.offsets = [3]int{-1, 0, 1}
	}
	return f
}

// Kernel returns the kernel of the filter.
func (f *Filter) Kernel() Kernel { return f.kernel }

// Order returns the channel order of the filter.
func (f *Filter) Order() ChannelOrder { return f.order }

// Distribute filters samples into dst, one [R, G, B] coverage triple per
// pixel. len(dst) pixels are produced; pixel p is centered on sample 3p+1.
// Samples outside samples are treated as zero.
func (f *Filter) Distribute(samples []uint8, dst [][3]uint8) {
	n := len(samples)
	for p := range dst {
		center := p*Subpixels + 1
		for c := 0; c < 3; c++ {
			mid := center + f.offsets[c]
			var acc int64
			for t := -2; t <= 2; t++ {
				i := mid + t
				if i < 0 || i >= n {
					continue
				}
				acc += int64(f.taps[t+2]) * int64(samples[i])
			}
			v := (acc + fixedHalf) >> fixedShift
			switch {
			case v < 0:
				v = 0
			case v > 255:
				v = 255
			}
			dst[p][c] = uint8(v)
		}
	}
}

func toFixed(w float64) int32 {
	return int32(math.Round(w * fixedOne))
}
