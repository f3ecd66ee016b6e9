package resample

import (
	"bytes"
	"testing"
)

// makeRows builds inHeight rows of rowLen bytes with a per-row pattern.
func makeRows(inHeight, rowLen int) [][]byte {
	rows := make([][]byte, inHeight)
	for y := range rows {
		rows[y] = make([]byte, rowLen)
		for x := range rows[y] {
			rows[y][x] = byte((y*53 + x*29 + x*y) % 256)
		}
	}
	return rows
}

// drive runs the pull protocol over rows and returns the output rows together
// with the largest window observed.
func drive(t *testing.T, rows [][]byte, outHeight int, layout Layout) ([][]byte, int) {
	t.Helper()
	rowLen := len(rows[0])
	ys := NewYScaler(len(rows), outHeight, rowLen, layout)
	var out [][]byte
	pulled, peak := 0, 0
	for y := 0; y < outHeight; y++ {
		for slot := ys.Next(); slot != nil; slot = ys.Next() {
			copy(slot, rows[pulled])
			pulled++
			if ys.Buffered() > peak {
				peak = ys.Buffered()
			}
		}
		row := make([]byte, rowLen)
		ys.Scale(row)
		out = append(out, row)
	}
	if pulled != len(rows) {
		t.Fatalf("%d -> %d: pulled %d rows; want %d", len(rows), outHeight, pulled, len(rows))
	}
	if !ys.Done() {
		t.Fatalf("%d -> %d: scaler not done", len(rows), outHeight)
	}
	if ys.Buffered() != 0 {
		t.Fatalf("%d -> %d: %d rows still buffered", len(rows), outHeight, ys.Buffered())
	}
	return out, peak
}

func TestYScalerWindowBound(t *testing.T) {
	for in := 1; in <= 40; in++ {
		for out := 1; out <= 40; out++ {
			_, peak := drive(t, makeRows(in, 3), out, Gray)
			limit := (in+out-1)/out + 1
			if peak > limit {
				t.Fatalf("%d -> %d: window reached %d rows; bound %d", in, out, peak, limit)
			}
			if WindowRows(in, out) != limit {
				t.Fatalf("WindowRows(%d,%d) = %d; want %d", in, out, WindowRows(in, out), limit)
			}
		}
	}
}

func TestYScalerIdentity(t *testing.T) {
	rows := makeRows(9, 12)
	out, peak := drive(t, rows, 9, RGBA)
	for y := range rows {
		if !bytes.Equal(rows[y], out[y]) {
			t.Fatalf("row %d changed: %v -> %v", y, rows[y], out[y])
		}
	}
	if peak > 1 {
		t.Fatalf("identity scale buffered %d rows", peak)
	}
}

func TestYScalerMatchesScaleRows(t *testing.T) {
	for _, l := range []Layout{Gray, RGB, RGBX} {
		for _, dims := range [][2]int{{10, 3}, {3, 10}, {17, 16}, {16, 17}, {1, 5}, {5, 1}, {100, 7}} {
			rows := makeRows(dims[0], l.RowLen(4))
			if l.Filler {
				for _, r := range rows {
					for i := 3; i < len(r); i += 4 {
						r[i] = 0
					}
				}
			}
			streamed, _ := drive(t, rows, dims[1], l)
			for y := 0; y < dims[1]; y++ {
				want := make([]byte, len(rows[0]))
				ScaleRows(rows, dims[0], dims[1], y, want, l)
				if !bytes.Equal(streamed[y], want) {
					t.Fatalf("%v %d -> %d row %d: streamed %v, random access %v", l, dims[0], dims[1], y, streamed[y], want)
				}
			}
		}
	}
}

func TestYScalerCarry(t *testing.T) {
	// 3 rows into 2: the middle row is split evenly between both outputs.
	rows := [][]byte{{0}, {90}, {180}}
	out, _ := drive(t, rows, 2, Gray)
	if out[0][0] != 30 || out[1][0] != 150 {
		t.Fatalf("got %d, %d; want 30, 150", out[0][0], out[1][0])
	}
}

func TestYScalerFlat(t *testing.T) {
	for _, dims := range [][2]int{{7, 2}, {2, 7}, {50, 49}} {
		rows := make([][]byte, dims[0])
		for i := range rows {
			rows[i] = bytes.Repeat([]byte{211}, 6)
		}
		out, _ := drive(t, rows, dims[1], Gray)
		for y, r := range out {
			if !bytes.Equal(r, rows[0]) {
				t.Fatalf("%d -> %d row %d: %v", dims[0], dims[1], y, r)
			}
		}
	}
}

func TestYScalerFillerZeroed(t *testing.T) {
	rows := [][]byte{{1, 2, 3, 99}, {4, 5, 6, 99}}
	out, _ := drive(t, rows, 3, RGBX)
	for y, r := range out {
		if r[3] != 0 {
			t.Fatalf("row %d filler = %d; want 0", y, r[3])
		}
	}
}

func TestYScalerContract(t *testing.T) {
	mustPanic(t, func() { NewYScaler(0, 1, 4, Gray) })
	mustPanic(t, func() { NewYScaler(1, 0, 4, Gray) })

	ys := NewYScaler(4, 2, 1, Gray)
	mustPanic(t, func() { ys.Scale(make([]byte, 1)) })

	ys = NewYScaler(1, 1, 1, Gray)
	for slot := ys.Next(); slot != nil; slot = ys.Next() {
		slot[0] = 7
	}
	out := make([]byte, 1)
	ys.Scale(out)
	if out[0] != 7 {
		t.Fatalf("1x1 scale = %d; want 7", out[0])
	}
	mustPanic(t, func() { ys.Next() })
	mustPanic(t, func() { ys.Scale(out) })
}

func TestScaleRowsRange(t *testing.T) {
	rows := makeRows(4, 2)
	mustPanic(t, func() { ScaleRows(rows, 4, 2, 2, make([]byte, 2), Gray) })
	mustPanic(t, func() { ScaleRows(rows[:3], 4, 2, 0, make([]byte, 2), Gray) })
}
