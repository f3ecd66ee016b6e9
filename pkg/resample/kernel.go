package resample

import (
	"fmt"
	"math"
	"strings"
)

// Kernel selects the horizontal resampling strategy. Both kernels share the
// same windowing; they differ only in how a tap's weight is derived.
type Kernel int

const (
	// Box weights every input sample by how much of the output pixel's
	// coverage interval it overlaps.
	Box Kernel = iota
	// Cubic evaluates a Keys cubic convolution around the mapped input
	// coordinate, stretched by the ratio when minifying.
	Cubic
)

// cubicSharpness is the Keys "a" parameter; -0.5 gives Catmull-Rom.
const cubicSharpness = -0.5

func (k Kernel) String() string {
	switch k {
	case Box:
		return "box"
	case Cubic:
		return "cubic"
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// ParseKernel maps a kernel name to its Kernel.
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box", "area":
		return Box, nil
	case "cubic", "bicubic", "catmull-rom":
		return Cubic, nil
	}
	return Box, fmt.Errorf("unknown kernel %q (want box or cubic)", s)
}

// Pad returns the kernel half-width, in pixels, the padded input row must
// provide for an in -> out horizontal scale.
func (k Kernel) Pad(in, out int) int {
	if k != Cubic {
		return 0
	}
	return 2 * stretch(in, out)
}

// stretch is the integer factor the cubic support widens by when minifying.
func stretch(in, out int) int {
	if in <= out {
		return 1
	}
	return (in + out - 1) / out
}

// keys is the Keys cubic convolution kernel.
func keys(x float64) float64 {
	const a = cubicSharpness
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((a+2)*x-(a+3))*x*x + 1
	case x < 2:
		return ((a*x-5*a)*x+8*a)*x - 4*a
	}
	return 0
}

// overlap returns how much input sample i overlaps output sample o on an axis
// mapping inLen samples to outLen samples. Units are 1/outLen of an input
// sample, so the overlaps for one output sample sum to exactly inLen.
func overlap(o, i, inLen, outLen int64) int64 {
	lo := o * inLen
	hi := lo + inLen
	ilo := i * outLen
	ihi := ilo + outLen
	if ilo > lo {
		lo = ilo
	}
	if ihi < hi {
		hi = ihi
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// coverRange returns the first and one-past-last input samples that overlap
// output sample o.
func coverRange(o, inLen, outLen int64) (int64, int64) {
	lo := o * inLen
	hi := lo + inLen
	return lo / outLen, (hi + outLen - 1) / outLen
}

// roundDiv divides a non-negative sum by d, rounding half up.
func roundDiv(sum, d int64) byte {
	v := (sum + d/2) / d
	if v > 255 {
		v = 255
	}
	return byte(v)
}

func clampByte(v float64) byte {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
