// Package lcd implements the subpixel distribution filter used for
// LCD-aware antialiasing.
//
// Coverage is computed at three samples per output pixel. The filter spreads
// every sample over a symmetric 5-tap kernel [t, s, p, s, t] to model optical
// crosstalk between neighbouring subpixels, then reads one value per color
// channel. A kernel whose weights obey p + 2s + 2t == 1 conserves energy, so a
// flat coverage field passes through unchanged and stays free of color
// fringes.
package lcd

import (
	"errors"
	"fmt"
	"math"
)

// Reference tuning.
const (
	DefaultPrimary   = 0.448
	DefaultSecondary = 0.184
	DefaultTertiary  = 0.092
)

// SumTolerance is the allowed deviation of the weight sum from 1.
const SumTolerance = 1e-6

var (
	// ErrKernelNotNormalized is returned when p + 2s + 2t differs from 1.
	ErrKernelNotNormalized = errors.New("lcd: kernel weights do not sum to 1")

	// ErrKernelRange is returned when a weight is negative or not finite.
	ErrKernelRange = errors.New("lcd: kernel weight out of range")
)

// KernelError describes an invalid kernel. The kernel itself is still
// usable; callers decide whether to normalize it.
type KernelError struct {
	Kernel Kernel
	Sum    float64
	Err    error
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("%v: primary=%g secondary=%g tertiary=%g sum=%g",
		e.Err, e.Kernel.Primary, e.Kernel.Secondary, e.Kernel.Tertiary, e.Sum)
}

func (e *KernelError) Unwrap() error { return e.Err }

// Kernel holds the three distinct weights of the symmetric 5-tap filter.
type Kernel struct {
	Primary   float64
	Secondary float64
	Tertiary  float64
}

// DefaultKernel returns the reference kernel, which is normalized.
func DefaultKernel() Kernel {
	return Kernel{Primary: DefaultPrimary, Secondary: DefaultSecondary, Tertiary: DefaultTertiary}
}

// NewKernel builds a kernel and validates it. The kernel is returned even
// when err is non-nil.
func NewKernel(primary, secondary, tertiary float64) (Kernel, error) {
	k := Kernel{Primary: primary, Secondary: secondary, Tertiary: tertiary}
	return k, k.Validate()
}

// FromPrimary builds a kernel from an adjustable primary weight with the
// secondary and tertiary weights held at their reference values. Any primary
// other than DefaultPrimary yields a KernelError.
func FromPrimary(primary float64) (Kernel, error) {
	return NewKernel(primary, DefaultSecondary, DefaultTertiary)
}

// Sum returns p + 2s + 2t.
func (k Kernel) Sum() float64 {
	return k.Primary + 2*k.Secondary + 2*k.Tertiary
}

// Taps returns the five weights in tap order.
func (k Kernel) Taps() [5]float64 {
	return [5]float64{k.Tertiary, k.Secondary, k.Primary, k.Secondary, k.Tertiary}
}

// Validate checks the weight ranges and the sum law.
// The returned error, if any, is a *KernelError.
func (k Kernel) Validate() error {
	sum := k.Sum()
	for _, w := range [3]float64{k.Primary, k.Secondary, k.Tertiary} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return &KernelError{Kernel: k, Sum: sum, Err: ErrKernelRange}
		}
	}
	if math.Abs(sum-1) > SumTolerance {
		return &KernelError{Kernel: k, Sum: sum, Err: ErrKernelNotNormalized}
	}
	return nil
}

// Normalized returns the kernel scaled so that its weights sum to 1.
// A zero kernel becomes the box filter {1/3, 2/9, 1/9}.
func (k Kernel) Normalized() Kernel {
	sum := k.Sum()
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return Kernel{Primary: 1.0 / 3, Secondary: 2.0 / 9, Tertiary: 1.0 / 9}
	}
	return Kernel{Primary: k.Primary / sum, Secondary: k.Secondary / sum, Tertiary: k.Tertiary / sum}
}

// String returns a compact representation of the kernel.
func (k Kernel) String() string {
	return fmt.Sprintf("lcd.Kernel{%g, %g, %g}", k.Primary, k.Secondary, k.Tertiary)
}
