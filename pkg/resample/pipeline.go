package resample

import "fmt"

// RowSource supplies input rows in order, one call per row. dst is exactly one
// row in the pipeline's layout.
type RowSource interface {
	ReadRow(dst []byte) error
}

// RowSink receives finished output rows in order. row is only valid for the
// duration of the call.
type RowSink interface {
	WriteRow(row []byte) error
}

// Stream resizes an image delivered row by row. Each input row is scaled
// horizontally as soon as it is read, and only the window of rows the
// vertical scaler needs is kept.
func Stream(src RowSource, sink RowSink, in, out Size, layout Layout, kernel Kernel) error {
	xs := NewXScaler(int(in.Width), int(out.Width), layout, kernel)
	ys := NewYScaler(int(in.Height), int(out.Height), layout.RowLen(int(out.Width)), layout)
	row := make([]byte, layout.RowLen(int(out.Width)))

	read := 0
	for y := 0; y < int(out.Height); y++ {
		for slot := ys.Next(); slot != nil; slot = ys.Next() {
			if err := src.ReadRow(xs.Input()); err != nil {
				return fmt.Errorf("read row %d: %w", read, err)
			}
			read++
			xs.Scale(slot)
		}
		ys.Scale(row)
		if err := sink.WriteRow(row); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}
	return nil
}

// Frame resizes an image whose rows are all available up front, such as an
// interlaced PNG after reconstruction. The vertical pass runs first, on
// full-width rows, then each result is scaled horizontally.
func Frame(rows [][]byte, sink RowSink, in, out Size, layout Layout, kernel Kernel) error {
	if len(rows) < int(in.Height) {
		return fmt.Errorf("frame has %d rows, want %d", len(rows), in.Height)
	}
	xs := NewXScaler(int(in.Width), int(out.Width), layout, kernel)
	row := make([]byte, layout.RowLen(int(out.Width)))
	for y := 0; y < int(out.Height); y++ {
		ScaleRows(rows, int(in.Height), int(out.Height), y, xs.Input(), layout)
		xs.Scale(row)
		if err := sink.WriteRow(row); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}
	return nil
}
