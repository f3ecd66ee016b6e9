package resample

import (
	"fmt"
	"math"
)

// XScaler converts rows of inWidth pixels into rows of outWidth pixels. Each
// row is independent of the previous ones; the per-column tap tables are built
// once when the scaler is created.
//
// Typical use: fill Input() with one decoded row, then call Scale.
type XScaler struct {
	in, out int
	layout  Layout
	kernel  Kernel
	src     *PaddedRow

	// start[o] is the first input pixel read for output column o. It may be
	// negative for the cubic kernel, which reads into the padded margin.
	start []int

	// box: column o uses boxW[off[o]:off[o+1]].
	off  []int
	boxW []int64

	// cubic: column o uses cubW[o*taps:(o+1)*taps].
	taps int
	cubW []float64
}

// NewXScaler builds a horizontal scaler. It panics if either width is below 1
// or the layout is invalid.
func NewXScaler(inWidth, outWidth int, layout Layout, kernel Kernel) *XScaler {
	if inWidth < 1 || outWidth < 1 {
		panic(fmt.Sprintf("resample: xscaler widths %d -> %d", inWidth, outWidth))
	}
	layout.validate()
	xs := &XScaler{
		in:     inWidth,
		out:    outWidth,
		layout: layout,
		kernel: kernel,
		src:    NewPaddedRow(inWidth, layout.Channels, kernel.Pad(inWidth, outWidth)),
		start:  make([]int, outWidth),
	}
	switch kernel {
	case Box:
		xs.buildBox()
	case Cubic:
		xs.buildCubic()
	default:
		panic(fmt.Sprintf("resample: unknown kernel %d", int(kernel)))
	}
	return xs
}

func (xs *XScaler) buildBox() {
	in, out := int64(xs.in), int64(xs.out)
	xs.off = make([]int, xs.out+1)
	xs.boxW = make([]int64, 0, xs.in+xs.out)
	for o := int64(0); o < out; o++ {
		first, end := coverRange(o, in, out)
		xs.start[o] = int(first)
		for i := first; i < end; i++ {
			xs.boxW = append(xs.boxW, overlap(o, i, in, out))
		}
		xs.off[o+1] = len(xs.boxW)
	}
}

func (xs *XScaler) buildCubic() {
	s := stretch(xs.in, xs.out)
	xs.taps = 4 * s
	xs.cubW = make([]float64, xs.out*xs.taps)

	r := float64(xs.in) / float64(xs.out)
	support := math.Max(1, r)
	for o := 0; o < xs.out; o++ {
		center := (float64(o)+0.5)*r - 0.5
		left := int(math.Floor(center)) - 2*s + 1
		xs.start[o] = left

		w := xs.cubW[o*xs.taps : (o+1)*xs.taps]
		var sum float64
		for k := range w {
			w[k] = keys((float64(left+k) - center) / support)
			sum += w[k]
		}
		if sum != 0 && sum != 1 {
			for k := range w {
				w[k] /= sum
			}
		}
	}
}

// Input returns the buffer the next input row must be written to. It holds
// inWidth pixels in the scaler's layout.
func (xs *XScaler) Input() []byte {
	return xs.src.Row()
}

// Scale resamples the current input row into out, which must hold outWidth
// pixels.
func (xs *XScaler) Scale(out []byte) {
	out = out[:xs.layout.RowLen(xs.out)]
	xs.src.Extend()
	if xs.kernel == Cubic {
		xs.scaleCubic(out)
	} else {
		xs.scaleBox(out)
	}
}

func (xs *XScaler) scaleBox(out []byte) {
	cmp := xs.layout.Channels
	row := xs.src.Row()
	d := int64(xs.in)
	for o := 0; o < xs.out; o++ {
		w := xs.boxW[xs.off[o]:xs.off[o+1]]
		base := xs.start[o] * cmp
		for c := 0; c < cmp; c++ {
			if xs.layout.skip(c) {
				out[o*cmp+c] = 0
				continue
			}
			var sum int64
			for k, wk := range w {
				sum += int64(row[base+k*cmp+c]) * wk
			}
			out[o*cmp+c] = roundDiv(sum, d)
		}
	}
}

func (xs *XScaler) scaleCubic(out []byte) {
	cmp := xs.layout.Channels
	buf := xs.src.buf
	pad := xs.src.pad
	for o := 0; o < xs.out; o++ {
		w := xs.cubW[o*xs.taps : (o+1)*xs.taps]
		base := (xs.start[o] + pad) * cmp
		for c := 0; c < cmp; c++ {
			if xs.layout.skip(c) {
				out[o*cmp+c] = 0
				continue
			}
			var sum float64
			for k, wk := range w {
				sum += float64(buf[base+k*cmp+c]) * wk
			}
			out[o*cmp+c] = clampByte(sum)
		}
	}
}

// XScale resamples a single row without keeping a scaler around.
func XScale(in []byte, inWidth int, out []byte, outWidth int, layout Layout, kernel Kernel) {
	xs := NewXScaler(inWidth, outWidth, layout, kernel)
	copy(xs.Input(), in)
	xs.Scale(out)
}
