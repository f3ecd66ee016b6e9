package resample

import "fmt"

// PaddedLen returns the length of a buffer holding one row of width pixels
// plus pad replicated pixels on each side.
func PaddedLen(width, channels, pad int) int {
	return (width + 2*pad) * channels
}

// PaddedOffset returns the index of the first real sample in a padded buffer.
func PaddedOffset(channels, pad int) int {
	return pad * channels
}

// PaddedRow is a sample row with pad replicated pixels at each edge, so a
// kernel of half-width pad can read indices [-pad, width+pad) without bounds
// checks. The margin is not persistent: Extend must run after every fill.
type PaddedRow struct {
	buf      []byte
	width    int
	channels int
	pad      int
}

// NewPaddedRow allocates a padded row.
func NewPaddedRow(width, channels, pad int) *PaddedRow {
	if width < 1 {
		panic(fmt.Sprintf("resample: padded row width %d", width))
	}
	if pad < 0 {
		panic(fmt.Sprintf("resample: negative pad %d", pad))
	}
	return &PaddedRow{
		buf:      make([]byte, PaddedLen(width, channels, pad)),
		width:    width,
		channels: channels,
		pad:      pad,
	}
}

// Row returns the real-data region, width*channels bytes long.
func (p *PaddedRow) Row() []byte {
	off := PaddedOffset(p.channels, p.pad)
	return p.buf[off : off+p.width*p.channels]
}

// Pad returns the margin width in pixels.
func (p *PaddedRow) Pad() int { return p.pad }

// Extend copies the leftmost pixel pad times to the left and the rightmost
// pixel pad times to the right.
func (p *PaddedRow) Extend() {
	if p.pad == 0 {
		return
	}
	cmp := p.channels
	off := PaddedOffset(cmp, p.pad)
	first := p.buf[off : off+cmp]
	lastOff := off + (p.width-1)*cmp
	last := p.buf[lastOff : lastOff+cmp]
	for i := 0; i < p.pad; i++ {
		copy(p.buf[i*cmp:], first)
		copy(p.buf[lastOff+(i+1)*cmp:], last)
	}
}

// At returns channel c of pixel i, where i may lie anywhere in [-pad, width+pad).
func (p *PaddedRow) At(i, c int) byte {
	return p.buf[(i+p.pad)*p.channels+c]
}
