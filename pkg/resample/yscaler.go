package resample

import "fmt"

// YScaler turns a stream of inHeight rows into outHeight rows, each rowLen
// bytes, using area weighting down the row axis.
//
// Rows are pulled, not pushed. For every output row the caller loops on Next,
// filling each returned slot with the next input row, until Next returns nil;
// then Scale writes the output row. Only the input rows overlapping the
// current output row are held, so the window never exceeds
// ceil(inHeight/outHeight)+1 rows.
//
//	for y := 0; y < outHeight; y++ {
//		for slot := ys.Next(); slot != nil; slot = ys.Next() {
//			fill(slot)
//		}
//		ys.Scale(out)
//	}
type YScaler struct {
	in, out int64
	rowLen  int
	layout  Layout

	ring  [][]byte
	head  int
	count int

	first  int64 // input index of ring[head]
	next   int64 // next input row to hand out
	target int64 // output row being produced
}

// NewYScaler allocates the row window. It panics if either height is below 1.
func NewYScaler(inHeight, outHeight, rowLen int, layout Layout) *YScaler {
	if inHeight < 1 || outHeight < 1 {
		panic(fmt.Sprintf("resample: yscaler heights %d -> %d", inHeight, outHeight))
	}
	if rowLen < 1 {
		panic(fmt.Sprintf("resample: yscaler row length %d", rowLen))
	}
	layout.validate()

	window := WindowRows(inHeight, outHeight)
	ys := &YScaler{
		in:     int64(inHeight),
		out:    int64(outHeight),
		rowLen: rowLen,
		layout: layout,
		ring:   make([][]byte, window),
	}
	backing := make([]byte, window*rowLen)
	for i := range ys.ring {
		ys.ring[i] = backing[i*rowLen : (i+1)*rowLen : (i+1)*rowLen]
	}
	return ys
}

// WindowRows is the most rows a YScaler for inHeight -> outHeight holds.
func WindowRows(inHeight, outHeight int) int {
	return (inHeight+outHeight-1)/outHeight + 1
}

// Next returns a slot for the next input row if the current output row still
// needs one, or nil when the output row is ready for Scale. The slot must be
// filled before Next is called again.
func (ys *YScaler) Next() []byte {
	if ys.Done() {
		panic("resample: yscaler Next called after the last row")
	}
	hi := (ys.target + 1) * ys.in
	if ys.next >= ys.in || ys.next*ys.out >= hi {
		return nil
	}
	if ys.count == len(ys.ring) {
		panic("resample: yscaler window overflow")
	}
	slot := ys.ring[(ys.head+ys.count)%len(ys.ring)]
	ys.count++
	ys.next++
	return slot
}

// Scale writes the current output row into out and moves on to the next one.
// Rows whose coverage ends before the next output row are released.
func (ys *YScaler) Scale(out []byte) {
	if ys.Done() {
		panic("resample: yscaler Scale called after the last row")
	}
	hi := (ys.target + 1) * ys.in
	if ys.next < ys.in && ys.next*ys.out < hi {
		panic("resample: yscaler Scale called before the window was filled")
	}

	ys.blend(out[:ys.rowLen])

	ys.target++
	lo := ys.target * ys.in
	for ys.count > 0 && (ys.first+1)*ys.out <= lo {
		ys.head = (ys.head + 1) % len(ys.ring)
		ys.count--
		ys.first++
	}
}

// blend sums the buffered rows weighted by their overlap with the current
// output row. The oldest row may have been partly used by the previous output
// row; only its remaining share (the carry) counts here.
func (ys *YScaler) blend(out []byte) {
	var weights [maxStackRows]int64
	w := weights[:0]
	if ys.count > maxStackRows {
		w = make([]int64, 0, ys.count)
	}
	for k := 0; k < ys.count; k++ {
		w = append(w, overlap(ys.target, ys.first+int64(k), ys.in, ys.out))
	}

	cmp := ys.layout.Channels
	for j := range out {
		if ys.layout.skip(j % cmp) {
			out[j] = 0
			continue
		}
		var sum int64
		for k, wk := range w {
			sum += int64(ys.ring[(ys.head+k)%len(ys.ring)][j]) * wk
		}
		out[j] = roundDiv(sum, ys.in)
	}
}

const maxStackRows = 16

// Buffered returns the number of input rows currently held.
func (ys *YScaler) Buffered() int { return ys.count }

// Done reports whether every output row has been produced.
func (ys *YScaler) Done() bool { return ys.target >= ys.out }

// ScaleRows is the random-access form of the vertical scaler, for images that
// are fully decoded up front. It writes output row target of an
// inHeight -> outHeight scale into out, reading rows[i] for every input row
// that overlaps it. All rows must be at least len(out) bytes.
func ScaleRows(rows [][]byte, inHeight, outHeight, target int, out []byte, layout Layout) {
	if inHeight < 1 || outHeight < 1 || len(rows) < inHeight {
		panic(fmt.Sprintf("resample: ScaleRows heights %d -> %d with %d rows", inHeight, outHeight, len(rows)))
	}
	if target < 0 || target >= outHeight {
		panic(fmt.Sprintf("resample: ScaleRows target %d out of range", target))
	}
	layout.validate()

	in, o := int64(inHeight), int64(target)
	first, end := coverRange(o, in, int64(outHeight))
	src := rows[first:end]
	w := make([]int64, len(src))
	for k := range w {
		w[k] = overlap(o, first+int64(k), in, int64(outHeight))
	}

	cmp := layout.Channels
	for j := range out {
		if layout.skip(j % cmp) {
			out[j] = 0
			continue
		}
		var sum int64
		for k, wk := range w {
			sum += int64(src[k][j]) * wk
		}
		out[j] = roundDiv(sum, in)
	}
}
