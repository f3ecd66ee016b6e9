// Package resample implements a two-axis streaming image resampler.
//
// Rows flow through a horizontal scaler (XScaler) one at a time and are then
// combined by a vertical scaler (YScaler) that only buffers the input rows
// overlapping the output row currently being produced. Samples are 8-bit,
// channels are interleaved.
package resample

import "fmt"

// Size is a width/height pair in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Layout describes how channels are interleaved in a sample row.
//
// When Filler is set the row carries 4 bytes per pixel of which only the first
// three are real; the fourth is written as 0 and never resampled.
type Layout struct {
	Channels int
	Filler   bool
}

// Gray, GrayAlpha, RGB, RGBX and RGBA are the layouts the codec bindings use.
var (
	Gray      = Layout{Channels: 1}
	GrayAlpha = Layout{Channels: 2}
	RGB       = Layout{Channels: 3}
	RGBX      = Layout{Channels: 4, Filler: true}
	RGBA      = Layout{Channels: 4}
)

// RowLen returns the number of bytes a row of width pixels occupies.
func (l Layout) RowLen(width int) int {
	return width * l.Channels
}

// skip reports whether channel c carries no resampled value.
func (l Layout) skip(c int) bool {
	return l.Filler && c == 3
}

func (l Layout) String() string {
	switch l {
	case Gray:
		return "gray"
	case GrayAlpha:
		return "gray+alpha"
	case RGB:
		return "rgb"
	case RGBX:
		return "rgbx"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("layout(%d,%v)", l.Channels, l.Filler)
}

func (l Layout) validate() {
	if l.Channels < 1 || l.Channels > 4 {
		panic(fmt.Sprintf("resample: invalid channel count %d", l.Channels))
	}
	if l.Filler && l.Channels != 4 {
		panic("resample: filler layout requires 4 channels")
	}
}
